package infra

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3deployment"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/pkg/errors"
)

// DefaultInvalidationPaths invalidates everything the distribution cached.
var DefaultInvalidationPaths = []string{"/*"}

type SiteDeploymentProps struct {
	// SourceDir must already be resolved with ResolveAssetDir.
	SourceDir string
	Bucket    awss3.IBucket
	// Distribution, when set, gets an invalidation for InvalidationPaths after
	// the upload. It must be the distribution fronting Bucket.
	Distribution awscloudfront.IDistribution
	// InvalidationPaths defaults to DefaultInvalidationPaths when nil.
	InvalidationPaths []string
	// Prune deletes objects missing from SourceDir. Nil keeps the CDK default.
	Prune       *bool
	MemoryLimit float64
}

// NewSiteDeployment uploads SourceDir into the bucket on every deploy.
func NewSiteDeployment(scope constructs.Construct, id string, props *SiteDeploymentProps) (awss3deployment.BucketDeployment, error) {
	if props == nil || props.Bucket == nil {
		return nil, errors.Errorf("deployment %s needs a destination bucket", id)
	}
	if props.SourceDir == "" {
		return nil, errors.Errorf("deployment %s needs a source directory", id)
	}

	var distributionPaths *[]*string
	if props.Distribution != nil {
		paths := props.InvalidationPaths
		if paths == nil {
			paths = DefaultInvalidationPaths
		}
		if err := validateInvalidationPaths(paths); err != nil {
			return nil, errors.Wrapf(err, "deployment %s", id)
		}
		distributionPaths = jsii.Strings(paths...)
	} else if len(props.InvalidationPaths) > 0 {
		return nil, errors.Errorf("deployment %s has invalidation paths but no distribution", id)
	}

	var memoryLimit *float64
	if props.MemoryLimit > 0 {
		memoryLimit = jsii.Number(props.MemoryLimit)
	}

	return awss3deployment.NewBucketDeployment(scope, jsii.String(id), &awss3deployment.BucketDeploymentProps{
		DestinationBucket: props.Bucket,
		Sources:           &[]awss3deployment.ISource{awss3deployment.Source_Asset(jsii.String(props.SourceDir), nil)},
		Distribution:      props.Distribution,
		DistributionPaths: distributionPaths,
		Prune:             props.Prune,
		MemoryLimit:       memoryLimit,
	}), nil
}
