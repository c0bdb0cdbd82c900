package infra

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3deployment"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type WebDeploymentStackProps struct {
	awscdk.StackProps
	Site SiteConfig
}

// WebDeployment is the synthesized site: bucket, access binding, distribution,
// asset deployment and outputs of one stack.
type WebDeployment struct {
	Stack        awscdk.Stack
	AssetDir     string
	Bucket       awss3.Bucket
	Binding      *AccessBinding
	Distribution awscloudfront.Distribution
	Deployment   awss3deployment.BucketDeployment
	Outputs      *SiteOutputs
}

// NewWebDeploymentStack validates the site config and asset directory before
// adding anything to scope, so a failure leaves the app tree untouched.
func NewWebDeploymentStack(scope constructs.Construct, id string, props *WebDeploymentStackProps) (*WebDeployment, error) {
	var sprops awscdk.StackProps
	site := DefaultSiteConfig()
	if props != nil {
		sprops = props.StackProps
		site = props.Site
	}
	if err := site.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid site config for %s", id)
	}
	kind, err := site.BindingKind()
	if err != nil {
		return nil, err
	}
	assetDir, err := ResolveAssetDir(site.AssetDir)
	if err != nil {
		return nil, err
	}

	if sprops.TerminationProtection == nil {
		sprops.TerminationProtection = jsii.Bool(StageTerminationProtection[site.Stage])
	}
	stack := awscdk.NewStack(scope, &id, &sprops)
	log := zap.S().With("stack", id)

	deployment := &WebDeployment{Stack: stack, AssetDir: assetDir}
	deployment.Bucket = NewWebStaticBucket(stack, "DeploymentBucket", nil)

	bindingId := "OriginAccessControl"
	if kind == LegacyIdentity {
		bindingId = "OriginAccessIdentity"
	}
	deployment.Binding, err = NewAccessBinding(stack, bindingId, &AccessBindingProps{
		Kind:              kind,
		Bucket:            deployment.Bucket,
		Partition:         site.Partition,
		Account:           site.Account,
		ExplicitStatement: site.ExplicitLegacyStatement,
	})
	if err != nil {
		return nil, err
	}

	deployment.Distribution, err = NewSiteDistribution(stack, "WebDeploymentDistribution", &SiteDistributionProps{
		Origin:        deployment.Binding.Origin(),
		RootObject:    site.RootObject,
		ErrorDocument: site.ErrorDocument,
		PriceClass:    site.PriceClass,
		Comment:       id + " " + site.Stage,
	})
	if err != nil {
		return nil, err
	}

	if err := deployment.Binding.Attach(stack, deployment.Distribution); err != nil {
		return nil, errors.Wrapf(err, "could not grant %s read access to the bucket", kind)
	}

	deployment.Deployment, err = NewSiteDeployment(stack, "WebDeploy", &SiteDeploymentProps{
		SourceDir:         assetDir,
		Bucket:            deployment.Bucket,
		Distribution:      deployment.Distribution,
		InvalidationPaths: site.InvalidationPaths,
	})
	if err != nil {
		return nil, err
	}

	deployment.Outputs = NewSiteOutputs(stack, &SiteOutputsProps{
		Bucket:       deployment.Bucket,
		Distribution: deployment.Distribution,
		Binding:      deployment.Binding,
		ExportPrefix: site.ExportPrefix,
	})

	log.Infof("declared %s site with %s access binding", site.Stage, kind)
	return deployment, nil
}
