package infra

import (
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// AccessBindingKind selects how CloudFront authenticates to the bucket.
type AccessBindingKind int

const (
	// SignedControl is an origin access control: CloudFront signs origin
	// requests with SigV4 and the bucket policy trusts the distribution ARN.
	SignedControl AccessBindingKind = iota
	// LegacyIdentity is an origin access identity granted read on the bucket.
	LegacyIdentity
)

func (k AccessBindingKind) String() string {
	switch k {
	case SignedControl:
		return "signed-control"
	case LegacyIdentity:
		return "legacy-identity"
	default:
		return "unknown"
	}
}

func ParseAccessBindingKind(s string) (AccessBindingKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "signed-control", "oac", "":
		return SignedControl, nil
	case "legacy-identity", "oai":
		return LegacyIdentity, nil
	}
	return SignedControl, errors.Errorf("unknown access binding %q, need signed-control (oac) or legacy-identity (oai)", s)
}

// originPropertyPath is the single S3 origin of a site distribution.
const originPropertyPath = "DistributionConfig.Origins.0"

// maxOriginAccessControlName is the CloudFront limit on origin access control names.
const maxOriginAccessControlName = 64

type AccessBindingProps struct {
	Kind   AccessBindingKind
	Bucket awss3.IBucket
	// Name is the origin access control name, or the identity comment.
	Name string
	// Partition and Account of the distribution ARN; empty uses the stack's.
	Partition string
	Account   string
	// ExplicitStatement grants a legacy identity read through its own bucket
	// policy statement instead of bucket.GrantRead.
	ExplicitStatement bool
}

// AccessBinding is the single CloudFront-to-S3 authorization of one distribution.
type AccessBinding struct {
	kind   AccessBindingKind
	props  AccessBindingProps
	origin awscloudfront.IOrigin

	control  awscloudfront.CfnOriginAccessControl
	identity awscloudfront.OriginAccessIdentity

	statement    awsiam.PolicyStatement
	distribution awscloudfront.IDistribution
}

func NewAccessBinding(scope constructs.Construct, id string, props *AccessBindingProps) (*AccessBinding, error) {
	if props == nil || props.Bucket == nil {
		return nil, errors.Errorf("access binding %s needs a bucket", id)
	}
	b := &AccessBinding{kind: props.Kind, props: *props}

	switch props.Kind {
	case SignedControl:
		name := props.Name
		if name == "" {
			name = *awscdk.Stack_Of(scope).StackName() + "-" + id
		}
		if len(name) > maxOriginAccessControlName {
			name = name[:maxOriginAccessControlName]
		}
		b.control = awscloudfront.NewCfnOriginAccessControl(scope, jsii.String(id), &awscloudfront.CfnOriginAccessControlProps{
			OriginAccessControlConfig: &awscloudfront.CfnOriginAccessControl_OriginAccessControlConfigProperty{
				Name:                          jsii.String(name),
				OriginAccessControlOriginType: jsii.String("s3"),
				SigningBehavior:               jsii.String("always"),
				SigningProtocol:               jsii.String("sigv4"),
			},
		})
		// The control id and the bucket policy are both set by Attach, once the
		// distribution exists.
		b.origin = awscloudfrontorigins.S3BucketOrigin_WithBucketDefaults(props.Bucket, nil)

	case LegacyIdentity:
		comment := props.Name
		if comment == "" {
			comment = "identity for " + id
		}
		b.identity = awscloudfront.NewOriginAccessIdentity(scope, jsii.String(id), &awscloudfront.OriginAccessIdentityProps{
			Comment: jsii.String(comment),
		})
		// A plain bucket origin: S3BucketOrigin_WithOriginAccessIdentity would add
		// its own read statement next to the grant below.
		b.origin = awscloudfrontorigins.S3BucketOrigin_WithBucketDefaults(props.Bucket, nil)
		if props.ExplicitStatement {
			b.statement = awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
				Sid:        jsii.String("AllowOriginAccessIdentityRead"),
				Effect:     awsiam.Effect_ALLOW,
				Principals: &[]awsiam.IPrincipal{awsiam.NewCanonicalUserPrincipal(b.identity.CloudFrontOriginAccessIdentityS3CanonicalUserId())},
				Actions:    jsii.Strings("s3:GetObject"),
				Resources:  jsii.Strings(*props.Bucket.ArnForObjects(jsii.String("*"))),
			})
			if err := addToBucketPolicy(props.Bucket, b.statement); err != nil {
				return nil, err
			}
		} else {
			props.Bucket.GrantRead(b.identity, nil)
		}

	default:
		return nil, errors.Errorf("unknown access binding kind %d", props.Kind)
	}

	zap.S().Debugf("access binding %s uses %s", id, props.Kind)
	return b, nil
}

func (b *AccessBinding) Kind() AccessBindingKind {
	return b.kind
}

// Id is the binding identifier: the origin access control id or the origin
// access identity id.
func (b *AccessBinding) Id() *string {
	if b.kind == LegacyIdentity {
		return b.identity.OriginAccessIdentityId()
	}
	return b.control.AttrId()
}

func (b *AccessBinding) Origin() awscloudfront.IOrigin {
	return b.origin
}

func (b *AccessBinding) OriginAccessControl() awscloudfront.CfnOriginAccessControl {
	return b.control
}

func (b *AccessBinding) OriginAccessIdentity() awscloudfront.OriginAccessIdentity {
	return b.identity
}

// Statement is the bucket policy statement added for this binding, nil when
// access flows through bucket.GrantRead or a signed control is not attached yet.
func (b *AccessBinding) Statement() awsiam.PolicyStatement {
	return b.statement
}

// Attach pairs the binding with the distribution built from its origin: the
// distribution's origin gets the control id or identity path, and a signed
// control appends the trust statement conditioned on that distribution's ARN.
// A legacy identity was already granted read by NewAccessBinding.
func (b *AccessBinding) Attach(stack awscdk.Stack, distribution awscloudfront.IDistribution) error {
	if distribution == nil {
		return errors.New("access binding needs a distribution to attach to")
	}
	if b.distribution != nil {
		return errors.New("access binding is already attached to a distribution")
	}
	cfn, ok := distribution.Node().DefaultChild().(awscloudfront.CfnDistribution)
	if !ok {
		return errors.New("access binding can only attach to a distribution defined in this app")
	}

	if b.kind != SignedControl {
		cfn.AddPropertyOverride(jsii.String(originPropertyPath+".S3OriginConfig.OriginAccessIdentity"), awscdk.Fn_Join(jsii.String(""), &[]*string{
			jsii.String("origin-access-identity/cloudfront/"),
			b.identity.OriginAccessIdentityId(),
		}))
		b.distribution = distribution
		return nil
	}
	cfn.AddPropertyOverride(jsii.String(originPropertyPath+".OriginAccessControlId"), b.control.AttrId())
	b.distribution = distribution

	partition := b.props.Partition
	if partition == "" {
		partition = *stack.Partition()
	}
	account := b.props.Account
	if account == "" {
		account = *stack.Account()
	}
	arn := DistributionArn(partition, account, *distribution.DistributionId())
	if err := arn.Validate(); err != nil {
		return err
	}

	b.statement = NewDistributionReadStatement(b.props.Bucket, arn.Format(stack))
	return addToBucketPolicy(b.props.Bucket, b.statement)
}

func (b *AccessBinding) Distribution() awscloudfront.IDistribution {
	return b.distribution
}
