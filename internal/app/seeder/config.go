package seeder

import "fmt"

// Config controls one seeding run. Values come from flags on the seeder
// binary, with environment fallbacks handled by the config loader.
type Config struct {
	// ContentRoot is the directory holding the authored content tree.
	ContentRoot string `yaml:"content_root" env:"SEED_CONTENT_ROOT" env-default:"content"`

	// DryRun parses and validates everything but writes nothing.
	DryRun bool `yaml:"dry_run" env:"SEED_DRY_RUN" env-default:"false"`

	// FullClear removes topics that are no longer present in the tree.
	// Without it a run only upserts what it finds.
	FullClear bool `yaml:"full_clear" env:"SEED_FULL_CLEAR" env-default:"false"`
}

// Validate checks the run configuration.
func (c Config) Validate() error {
	if c.ContentRoot == "" {
		return fmt.Errorf("content root is required")
	}
	return nil
}
