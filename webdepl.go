package main

import (
	"os"
	"time"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"

	"github.com/yishaiz/cdk-cicd-react-cloudfront/infra"
	"github.com/yishaiz/cdk-cicd-react-cloudfront/internal/logging"
)

func main() {
	logOpts := logging.LogOpts{
		Verbose:  os.Getenv("WEBDEPL_VERBOSE") != "",
		Encoding: os.Getenv("WEBDEPL_LOG_ENCODING"),
	}
	_, done := logOpts.Setup()

	err := synth()
	if err != nil {
		zap.S().Errorf("%+v", err)
	}
	done()
	if err != nil {
		os.Exit(1)
	}
}

func synth() error {
	defer jsii.Close()

	app := awscdk.NewApp(nil)

	site, err := infra.SiteConfigFromContext(app.Node())
	if err != nil {
		return err
	}

	_, err = infra.NewWebDeploymentStack(app, "WebDeploymentStack", &infra.WebDeploymentStackProps{
		StackProps: awscdk.StackProps{
			Env:         env(),
			StackName:   jsii.String("WebDeploymentStack-" + site.Stage),
			Description: jsii.String("static web site: s3 bucket behind a cloudfront distribution"),
		},
		Site: site,
	})
	if err != nil {
		return err
	}

	awscdk.Tags_Of(app).Add(jsii.String("version"), jsii.String("1.0.0"), nil)
	awscdk.Tags_Of(app).Add(jsii.String("project"), jsii.String("cdk-cicd-react-cloudfront"), nil)
	awscdk.Tags_Of(app).Add(jsii.String("stage"), jsii.String(site.Stage), nil)
	awscdk.Tags_Of(app).Add(jsii.String("synthTime"), jsii.String(time.Now().Format("2006-01-02 15:04:05.999")), nil)

	app.Synth(nil)
	return nil
}

// env determines the AWS environment (account+region) in which our stack is to
// be deployed. For more information see: https://docs.aws.amazon.com/cdk/latest/guide/environments.html
func env() *awscdk.Environment {
	// The CDK CLI sets these from the current profile. Without them the stack is
	// "environment-agnostic" and a single synthesized template can be deployed anywhere.
	account, region := os.Getenv("CDK_DEFAULT_ACCOUNT"), os.Getenv("CDK_DEFAULT_REGION")
	if account == "" || region == "" {
		return nil
	}
	return &awscdk.Environment{
		Account: jsii.String(account),
		Region:  jsii.String(region),
	}
}
