package infra

import (
	"sort"
	"strings"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// SiteContextKey is the cdk.json context object holding SiteConfig.
const SiteContextKey = "site"

// StageTerminationProtection lists the supported stages and whether their
// stack is protected from accidental deletion.
var StageTerminationProtection map[string]bool = map[string]bool{
	"dev":        false,
	"test":       false,
	"pre":        true,
	"production": true,
}

type SiteConfig struct {
	Stage                   string   `mapstructure:"stage"`
	AccessBinding           string   `mapstructure:"access_binding"`
	AssetDir                string   `mapstructure:"asset_dir"`
	Account                 string   `mapstructure:"account"`
	Partition               string   `mapstructure:"partition"`
	RootObject              string   `mapstructure:"root_object"`
	ErrorDocument           string   `mapstructure:"error_document"`
	PriceClass              string   `mapstructure:"price_class"`
	InvalidationPaths       []string `mapstructure:"invalidation_paths"`
	ExportPrefix            string   `mapstructure:"export_prefix"`
	ExplicitLegacyStatement bool     `mapstructure:"explicit_legacy_statement"`
}

func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		Stage:             "dev",
		AccessBinding:     SignedControl.String(),
		RootObject:        "index.html",
		InvalidationPaths: []string{"/*"},
		ExportPrefix:      "WebDepl",
	}
}

var siteConfigKeys = []string{
	"stage",
	"access_binding",
	"asset_dir",
	"account",
	"partition",
	"root_object",
	"error_document",
	"price_class",
	"invalidation_paths",
	"export_prefix",
	"explicit_legacy_statement",
}

// SiteConfigFromContext reads the "site" context object and then any flat
// context key of the same name, so `cdk synth -c access_binding=oai` overrides
// cdk.json.
func SiteConfigFromContext(node constructs.Node) (SiteConfig, error) {
	cfg := DefaultSiteConfig()

	if raw := node.TryGetContext(jsii.String(SiteContextKey)); raw != nil {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return cfg, errors.Errorf("context %q must be an object, got %T", SiteContextKey, raw)
		}
		if err := decodeSiteConfig(obj, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "could not decode context %q", SiteContextKey)
		}
	}

	flat := make(map[string]interface{})
	for _, key := range siteConfigKeys {
		if v := node.TryGetContext(jsii.String(key)); v != nil {
			flat[key] = v
		}
	}
	if len(flat) > 0 {
		if err := decodeSiteConfig(flat, &cfg); err != nil {
			return cfg, errors.Wrap(err, "could not decode context overrides")
		}
	}

	return cfg, cfg.Validate()
}

func decodeSiteConfig(input map[string]interface{}, cfg *SiteConfig) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		ZeroFields:       true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func (c SiteConfig) Validate() error {
	if _, err := ParseAccessBindingKind(c.AccessBinding); err != nil {
		return err
	}
	if _, ok := StageTerminationProtection[c.Stage]; !ok {
		return errors.Errorf("unsupported stage %q, need one of: %s", c.Stage, stageNames())
	}
	if c.PriceClass != "" {
		if _, err := parsePriceClass(c.PriceClass); err != nil {
			return err
		}
	}
	return validateInvalidationPaths(c.InvalidationPaths)
}

func (c SiteConfig) BindingKind() (AccessBindingKind, error) {
	return ParseAccessBindingKind(c.AccessBinding)
}

func stageNames() string {
	names := make([]string, 0, len(StageTerminationProtection))
	for s := range StageTerminationProtection {
		names = append(names, s)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func validateInvalidationPaths(paths []string) error {
	if paths == nil {
		return nil
	}
	if len(paths) == 0 {
		return errors.New("invalidation paths must not be empty")
	}
	for _, p := range paths {
		if !strings.HasPrefix(p, "/") {
			return errors.Errorf("invalidation path %q must start with /", p)
		}
	}
	return nil
}
