package infra

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/jsii-runtime-go"
	"github.com/pkg/errors"
)

const cloudFrontServicePrincipal = "cloudfront.amazonaws.com"

// NewDistributionReadStatement allows the CloudFront service to read every
// object in bucket, but only on behalf of the distribution with distributionArn.
func NewDistributionReadStatement(bucket awss3.IBucket, distributionArn *string) awsiam.PolicyStatement {
	return awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Sid:        jsii.String("AllowCloudFrontServicePrincipal"),
		Effect:     awsiam.Effect_ALLOW,
		Principals: &[]awsiam.IPrincipal{awsiam.NewServicePrincipal(jsii.String(cloudFrontServicePrincipal), nil)},
		Actions:    jsii.Strings("s3:GetObject"),
		Resources:  jsii.Strings(*bucket.ArnForObjects(jsii.String("*"))),
		Conditions: &map[string]interface{}{
			"StringEquals": map[string]interface{}{
				"AWS:SourceArn": distributionArn,
			},
		},
	})
}

// addToBucketPolicy appends to the bucket's resource policy.
func addToBucketPolicy(bucket awss3.IBucket, statement awsiam.PolicyStatement) error {
	result := bucket.AddToResourcePolicy(statement)
	if result == nil || result.StatementAdded == nil || !*result.StatementAdded {
		return errors.Errorf("could not add statement %s to the bucket policy", deref(statement.Sid()))
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
