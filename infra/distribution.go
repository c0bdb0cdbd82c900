package infra

import (
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/pkg/errors"
)

type SiteDistributionProps struct {
	Origin awscloudfront.IOrigin
	// RootObject defaults to index.html.
	RootObject string
	// ErrorDocument, when set, answers 403 and 404 with this object and a 200,
	// which single page apps need for client side routes.
	ErrorDocument string
	PriceClass    string
	Comment       string
}

// NewSiteDistribution fronts a single origin with one default behavior that
// redirects plain HTTP to HTTPS.
func NewSiteDistribution(scope constructs.Construct, id string, props *SiteDistributionProps) (awscloudfront.Distribution, error) {
	if props == nil || props.Origin == nil {
		return nil, errors.Errorf("distribution %s needs an origin", id)
	}

	rootObject := props.RootObject
	if rootObject == "" {
		rootObject = "index.html"
	}
	priceClass, err := parsePriceClass(props.PriceClass)
	if err != nil {
		return nil, err
	}

	var errorResponses *[]*awscloudfront.ErrorResponse
	if props.ErrorDocument != "" {
		page := "/" + strings.TrimPrefix(props.ErrorDocument, "/")
		errorResponses = &[]*awscloudfront.ErrorResponse{
			{HttpStatus: jsii.Number(403), ResponseHttpStatus: jsii.Number(200), ResponsePagePath: jsii.String(page), Ttl: awscdk.Duration_Seconds(jsii.Number(0))},
			{HttpStatus: jsii.Number(404), ResponseHttpStatus: jsii.Number(200), ResponsePagePath: jsii.String(page), Ttl: awscdk.Duration_Seconds(jsii.Number(0))},
		}
	}

	var comment *string
	if props.Comment != "" {
		comment = jsii.String(props.Comment)
	}

	return awscloudfront.NewDistribution(scope, jsii.String(id), &awscloudfront.DistributionProps{
		DefaultRootObject: jsii.String(rootObject),
		DefaultBehavior: &awscloudfront.BehaviorOptions{
			Origin:               props.Origin,
			ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
		},
		ErrorResponses: errorResponses,
		PriceClass:     priceClass,
		Comment:        comment,
	}), nil
}

func parsePriceClass(s string) (awscloudfront.PriceClass, error) {
	switch strings.TrimPrefix(strings.ToLower(s), "priceclass_") {
	case "", "100":
		return awscloudfront.PriceClass_PRICE_CLASS_100, nil
	case "200":
		return awscloudfront.PriceClass_PRICE_CLASS_200, nil
	case "all":
		return awscloudfront.PriceClass_PRICE_CLASS_ALL, nil
	}
	return "", errors.Errorf("unknown price class %q, need 100, 200 or all", s)
}
