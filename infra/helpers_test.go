package infra

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/require"
)

type policyStatement struct {
	Sid       string
	Effect    string
	Principal interface{}
	Action    interface{}
	Resource  interface{}
	Condition map[string]map[string]interface{}
}

func newSiteDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html><body>hello</body></html>"), 0o644))
	return dir
}

func synthSite(t *testing.T, site SiteConfig) (*WebDeployment, assertions.Template) {
	t.Helper()
	app := awscdk.NewApp(nil)
	site.AssetDir = newSiteDir(t)
	deployment, err := NewWebDeploymentStack(app, "TestStack", &WebDeploymentStackProps{Site: site})
	require.NoError(t, err)
	return deployment, assertions.Template_FromStack(deployment.Stack, nil)
}

func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

// bucketPolicyStatements flattens the statements of every bucket policy in the template.
func bucketPolicyStatements(t *testing.T, template assertions.Template) []policyStatement {
	t.Helper()
	found := template.FindResources(jsii.String("AWS::S3::BucketPolicy"), nil)
	require.NotNil(t, found)

	var statements []policyStatement
	for _, res := range *found {
		var policy struct {
			Properties struct {
				PolicyDocument struct {
					Statement []policyStatement
				}
			}
		}
		require.NoError(t, json.Unmarshal([]byte(toJSON(t, res)), &policy))
		statements = append(statements, policy.Properties.PolicyDocument.Statement...)
	}
	return statements
}

func sourceArnStatements(statements []policyStatement) []policyStatement {
	var out []policyStatement
	for _, st := range statements {
		if _, ok := st.Condition["StringEquals"]["AWS:SourceArn"]; ok {
			out = append(out, st)
		}
	}
	return out
}

// distributionOrigins returns the synthesized Origins of one distribution.
func distributionOrigins(t *testing.T, stack awscdk.Stack, template assertions.Template, distribution awscloudfront.IDistribution) []map[string]interface{} {
	t.Helper()
	ref, ok := stack.Resolve(distribution.DistributionId()).(map[string]interface{})
	require.True(t, ok)
	logicalId, ok := ref["Ref"].(string)
	require.True(t, ok)

	found := template.FindResources(jsii.String("AWS::CloudFront::Distribution"), nil)
	res, ok := (*found)[logicalId]
	require.True(t, ok, "distribution %s not in template", logicalId)

	var resource struct {
		Properties struct {
			DistributionConfig struct {
				Origins []map[string]interface{}
			}
		}
	}
	require.NoError(t, json.Unmarshal([]byte(toJSON(t, res)), &resource))
	return resource.Properties.DistributionConfig.Origins
}

// canonicalUserStatements are the statements granting an origin access identity.
func canonicalUserStatements(statements []policyStatement) []policyStatement {
	var out []policyStatement
	for _, st := range statements {
		if p, ok := st.Principal.(map[string]interface{}); ok {
			if _, ok := p["CanonicalUser"]; ok {
				out = append(out, st)
			}
		}
	}
	return out
}
