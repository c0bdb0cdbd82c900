package infra

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appWithContext(ctx map[string]interface{}) awscdk.App {
	return awscdk.NewApp(&awscdk.AppProps{Context: &ctx})
}

func bindingKind(t *testing.T, cfg SiteConfig) AccessBindingKind {
	t.Helper()
	kind, err := cfg.BindingKind()
	require.NoError(t, err)
	return kind
}

func TestSiteConfigFromContext_Defaults(t *testing.T) {
	cfg, err := SiteConfigFromContext(appWithContext(map[string]interface{}{}).Node())
	require.NoError(t, err)
	assert.Equal(t, DefaultSiteConfig(), cfg)
	assert.Equal(t, SignedControl, bindingKind(t, cfg))
}

func TestSiteConfigFromContext_Object(t *testing.T) {
	app := appWithContext(map[string]interface{}{
		"site": map[string]interface{}{
			"access_binding":            "oai",
			"account":                   "123456789012",
			"invalidation_paths":        []interface{}{"/index.html", "/assets/*"},
			"explicit_legacy_statement": true,
			"price_class":               "all",
			"export_prefix":             "Docs",
		},
	})

	cfg, err := SiteConfigFromContext(app.Node())
	require.NoError(t, err)
	assert.Equal(t, LegacyIdentity, bindingKind(t, cfg))
	assert.Equal(t, "123456789012", cfg.Account)
	assert.Equal(t, []string{"/index.html", "/assets/*"}, cfg.InvalidationPaths)
	assert.True(t, cfg.ExplicitLegacyStatement)
	assert.Equal(t, "all", cfg.PriceClass)
	assert.Equal(t, "Docs", cfg.ExportPrefix)
	assert.Equal(t, "index.html", cfg.RootObject)
}

func TestSiteConfigFromContext_FlatOverrides(t *testing.T) {
	// `cdk synth -c key=value` always passes strings
	app := appWithContext(map[string]interface{}{
		"site": map[string]interface{}{
			"access_binding":     "signed-control",
			"invalidation_paths": []interface{}{"/*", "/extra/*"},
		},
		"stage":                     "test",
		"access_binding":            "legacy-identity",
		"invalidation_paths":        "/index.html",
		"explicit_legacy_statement": "true",
	})

	cfg, err := SiteConfigFromContext(app.Node())
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Stage)
	assert.Equal(t, LegacyIdentity, bindingKind(t, cfg))
	assert.Equal(t, []string{"/index.html"}, cfg.InvalidationPaths)
	assert.True(t, cfg.ExplicitLegacyStatement)
}

func TestSiteConfigFromContext_Errors(t *testing.T) {
	tests := []struct {
		name string
		ctx  map[string]interface{}
	}{
		{name: "site not an object", ctx: map[string]interface{}{"site": "oac"}},
		{name: "unknown key", ctx: map[string]interface{}{"site": map[string]interface{}{"bucket_website": true}}},
		{name: "unknown binding", ctx: map[string]interface{}{"access_binding": "public"}},
		{name: "unknown stage", ctx: map[string]interface{}{"stage": "qa"}},
		{name: "relative invalidation path", ctx: map[string]interface{}{"invalidation_paths": "index.html"}},
		{name: "empty invalidation paths", ctx: map[string]interface{}{"site": map[string]interface{}{"invalidation_paths": []interface{}{}}}},
		{name: "unknown price class", ctx: map[string]interface{}{"price_class": "300"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SiteConfigFromContext(appWithContext(tt.ctx).Node())
			assert.Error(t, err)
		})
	}
}

func TestSiteConfig_BindingKindInvalid(t *testing.T) {
	cfg := DefaultSiteConfig()
	cfg.AccessBinding = "public-website"

	_, err := cfg.BindingKind()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "public-website")
	assert.Error(t, cfg.Validate())
}

func TestParseAccessBindingKind(t *testing.T) {
	tests := []struct {
		in      string
		want    AccessBindingKind
		wantErr bool
	}{
		{in: "", want: SignedControl},
		{in: "signed-control", want: SignedControl},
		{in: "OAC", want: SignedControl},
		{in: " legacy-identity ", want: LegacyIdentity},
		{in: "oai", want: LegacyIdentity},
		{in: "website", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAccessBindingKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "signed-control", SignedControl.String())
	assert.Equal(t, "legacy-identity", LegacyIdentity.String())
	assert.Equal(t, "unknown", AccessBindingKind(7).String())
}
