package infra

import (
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/pkg/errors"
)

// Arn is a structured Amazon Resource Name. Fields may hold CDK tokens; Format
// resolves them at synthesis time.
type Arn struct {
	Partition    string
	Service      string
	Region       string
	Account      string
	ResourceType string
	ResourceID   string
}

// DistributionArn builds arn:<partition>:cloudfront::<account>:distribution/<id>.
// CloudFront is a global service so the region is always empty.
func DistributionArn(partition, account, distributionID string) Arn {
	return Arn{
		Partition:    partition,
		Service:      "cloudfront",
		Account:      account,
		ResourceType: "distribution",
		ResourceID:   distributionID,
	}
}

func (a Arn) Validate() error {
	var missing []string
	if a.Partition == "" {
		missing = append(missing, "partition")
	}
	if a.Service == "" {
		missing = append(missing, "service")
	}
	if a.ResourceType == "" {
		missing = append(missing, "resource type")
	}
	if a.ResourceID == "" {
		missing = append(missing, "resource id")
	}
	if len(missing) > 0 {
		return errors.Errorf("arn is missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// String renders the ARN in slash-resource-name form. Only meaningful when no
// field is an unresolved token.
func (a Arn) String() string {
	return "arn:" + a.Partition + ":" + a.Service + ":" + a.Region + ":" + a.Account + ":" + a.ResourceType + "/" + a.ResourceID
}

// Format renders the ARN through the CDK so token fields become intrinsics
// instead of placeholder text.
func (a Arn) Format(stack awscdk.Stack) *string {
	return awscdk.Arn_Format(&awscdk.ArnComponents{
		Partition:    jsii.String(a.Partition),
		Service:      jsii.String(a.Service),
		Region:       jsii.String(a.Region),
		Account:      jsii.String(a.Account),
		Resource:     jsii.String(a.ResourceType),
		ResourceName: jsii.String(a.ResourceID),
		ArnFormat:    awscdk.ArnFormat_SLASH_RESOURCE_NAME,
	}, stack)
}
