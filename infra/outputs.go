package infra

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type SiteOutputsProps struct {
	Bucket       awss3.IBucket
	Distribution awscloudfront.IDistribution
	Binding      *AccessBinding
	// ExportPrefix is prepended to each output id to form its export name.
	// Empty disables exports.
	ExportPrefix string
}

type SiteOutputs struct {
	AppUrl         awscdk.CfnOutput
	BucketName     awscdk.CfnOutput
	DistributionId awscdk.CfnOutput
	BindingId      awscdk.CfnOutput
}

// SiteUrl is https://<distribution domain name>.
func SiteUrl(distribution awscloudfront.IDistribution) *string {
	return awscdk.Fn_Join(jsii.String(""), &[]*string{
		jsii.String("https://"),
		distribution.DistributionDomainName(),
	})
}

func NewSiteOutputs(scope constructs.Construct, props *SiteOutputsProps) *SiteOutputs {
	output := func(id string, value *string, description string) awscdk.CfnOutput {
		var exportName *string
		if props.ExportPrefix != "" {
			exportName = jsii.String(props.ExportPrefix + id)
		}
		return awscdk.NewCfnOutput(scope, jsii.String(id), &awscdk.CfnOutputProps{
			Value:       value,
			Description: jsii.String(description),
			ExportName:  exportName,
		})
	}

	outputs := &SiteOutputs{
		AppUrl:         output("AppUrl", SiteUrl(props.Distribution), "URL of the deployed web application"),
		BucketName:     output("BucketName", props.Bucket.BucketName(), "Name of the S3 bucket used for deployment"),
		DistributionId: output("DistributionId", props.Distribution.DistributionId(), "ID of the CloudFront distribution"),
	}

	switch props.Binding.Kind() {
	case LegacyIdentity:
		outputs.BindingId = output("OriginAccessIdentityId", props.Binding.Id(), "ID of the CloudFront Origin Access Identity")
	default:
		outputs.BindingId = output("OriginAccessControlId", props.Binding.Id(), "ID of the CloudFront Origin Access Control")
	}
	return outputs
}
