package infra

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type WebStaticBucketProps struct {
	// BucketName is optional; CloudFormation generates one when empty.
	BucketName string
}

// NewWebStaticBucket creates the private bucket holding the built site. It is
// emptied and deleted with the stack.
func NewWebStaticBucket(scope constructs.Construct, id string, props *WebStaticBucketProps) awss3.Bucket {
	var bprops WebStaticBucketProps
	if props != nil {
		bprops = *props
	}

	var bucketName *string
	if bprops.BucketName != "" {
		bucketName = jsii.String(bprops.BucketName)
	}

	return awss3.NewBucket(scope, jsii.String(id), &awss3.BucketProps{
		BucketName:        bucketName,
		RemovalPolicy:     awscdk.RemovalPolicy_DESTROY,
		AutoDeleteObjects: jsii.Bool(true),
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		ObjectOwnership:   awss3.ObjectOwnership_BUCKET_OWNER_ENFORCED,
		EnforceSSL:        jsii.Bool(true),
	})
}
