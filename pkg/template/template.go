// Package template scaffolds new content packs: the metadata record seeded
// from the instance defaults, a README, ignore files and the standard content
// directory layout.
package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gocortexio/spellbook/internal/logger"
	"github.com/gocortexio/spellbook/pkg/config"
	"github.com/gocortexio/spellbook/pkg/errors"
	"github.com/gocortexio/spellbook/pkg/fsutil"
	"github.com/gocortexio/spellbook/pkg/manifest"
	"github.com/gocortexio/spellbook/pkg/version"
)

// ContentDirectories is the standard layout of a new pack.
var ContentDirectories = []string{
	"Integrations",
	"Scripts",
	"Playbooks",
	"IncidentTypes",
	"IncidentFields",
	"Layouts",
	"Classifiers",
	"CorrelationRules",
	"ParsingRules",
	"ModelingRules",
	"XSIAMDashboards",
	"XSIAMReports",
	"Triggers",
	"Jobs",
	"XDRCTemplates",
	"ReleaseNotes",
}

// ErrInvalidPackName is returned for pack names that cannot become a
// directory and a version-control tag prefix.
var ErrInvalidPackName = fmt.Errorf("invalid pack name")

// Options customizes a scaffolded pack. Zero values fall back to the
// instance defaults.
type Options struct {
	Description string
	Author      string
	Categories  []string

	// Directories overrides the standard content directory layout.
	Directories []string

	// SampleRule adds an example correlation rule pair to the new pack.
	SampleRule bool
}

// Scaffolder creates packs under one instance's packs directory.
type Scaffolder struct {
	packsDir string
	defaults config.Defaults
}

// New creates a scaffolder writing into packsDir.
func New(packsDir string, defaults config.Defaults) *Scaffolder {
	return &Scaffolder{packsDir: packsDir, defaults: defaults}
}

// Create scaffolds a new pack and returns its directory. An existing
// directory of the same name is an error, never overwritten.
func (s *Scaffolder) Create(name string, opts Options) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	packPath := filepath.Join(s.packsDir, name)
	if _, err := os.Stat(packPath); err == nil {
		return "", errors.Wrapf(errors.ErrPackExists, "%s", packPath)
	}
	if err := fsutil.EnsureDir(packPath); err != nil {
		return "", err
	}

	if err := s.writeMetadata(packPath, name, opts); err != nil {
		return "", err
	}
	if err := writeReadme(packPath, name, opts.Description); err != nil {
		return "", err
	}
	if err := writePackIgnore(packPath); err != nil {
		return "", err
	}
	if err := writeSecretsIgnore(packPath); err != nil {
		return "", err
	}

	directories := opts.Directories
	if directories == nil {
		directories = ContentDirectories
	}
	for _, dir := range directories {
		dirPath := filepath.Join(packPath, dir)
		if err := fsutil.EnsureDir(dirPath); err != nil {
			return "", err
		}
		gitkeep := filepath.Join(dirPath, ".gitkeep")
		if err := os.WriteFile(gitkeep, nil, fsutil.FileModeDefault); err != nil {
			return "", errors.Wrapf(err, "failed to create %s", gitkeep)
		}
	}

	if opts.SampleRule {
		if err := writeSampleRules(packPath, name); err != nil {
			return "", err
		}
	}

	logger.Successf("created pack %s", packPath)
	return packPath, nil
}

func validateName(name string) error {
	if name == "" {
		return errors.Wrap(ErrInvalidPackName, "name is empty")
	}
	if strings.ContainsAny(name, " /\\") {
		return errors.Wrapf(ErrInvalidPackName, "%q contains spaces or path separators", name)
	}
	return nil
}

func (s *Scaffolder) writeMetadata(packPath, name string, opts Options) error {
	description := opts.Description
	if description == "" {
		description = name + " content pack"
	}
	author := opts.Author
	if author == "" {
		author = s.defaults.Author
	}
	categories := opts.Categories
	if categories == nil {
		categories = orEmpty(s.defaults.Categories)
	}
	support := s.defaults.Support
	if support == "" {
		support = "community"
	}
	marketplaces := s.defaults.Marketplaces
	if marketplaces == nil {
		marketplaces = []string{"xsoar", "marketplacev2"}
	}

	m := &manifest.Manifest{
		Name:           name,
		Description:    description,
		Support:        support,
		CurrentVersion: version.Default,
		Author:         author,
		URL:            s.defaults.URL,
		Email:          s.defaults.Email,
		Categories:     categories,
		Tags:           orEmpty(s.defaults.Tags),
		UseCases:       orEmpty(s.defaults.UseCases),
		Keywords:       orEmpty(s.defaults.Keywords),
		Marketplaces:   marketplaces,
		Extra: map[string]json.RawMessage{
			"githubUser": json.RawMessage("[]"),
		},
	}
	return manifest.Write(packPath, m)
}

// orEmpty keeps scaffolded metadata arrays as [] instead of null.
func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func writeReadme(packPath, name, description string) error {
	if description == "" {
		description = "Content pack for Cortex Platform."
	}
	content := fmt.Sprintf(`# %s

%s

## Overview

This pack contains content for use with Cortex Platform.

## Content Items

### Parsing Rules

Rules for parsing raw log data into structured fields.

### Modelling Rules

Rules for mapping parsed data to the XDM (Cross Data Model) schema.

### Correlation Rules

Detection rules that identify security events and generate alerts.

## Installation

Upload the pack zip file to your Cortex Platform instance.

## Support

For support, please refer to the pack metadata for contact information.
`, name, description)

	return writeFile(filepath.Join(packPath, "README.md"), content)
}

func writePackIgnore(packPath string) error {
	content := `# Pack ignore file
# Use this file to ignore specific linter errors or tests

# Ignore a specific test
# [file:playbook-Test.yml]
# ignore=auto-test

# Ignore linter errors
# [file:integration.yml]
# ignore=IN126,PA116
`
	return writeFile(filepath.Join(packPath, ".pack-ignore"), content)
}

func writeSecretsIgnore(packPath string) error {
	content := `# Secrets ignore file
# Add words that should be allowed in secret scanning

# Example allowed words:
# example_api_key
# test_token
`
	return writeFile(filepath.Join(packPath, ".secrets-ignore"), content)
}

// writeSampleRules drops a real-time and a scheduled correlation rule into
// the pack, ready to adjust rather than write from scratch.
func writeSampleRules(packPath, name string) error {
	rulesDir := filepath.Join(packPath, "CorrelationRules")
	if err := fsutil.EnsureDir(rulesDir); err != nil {
		return err
	}

	dataset := strings.ToLower(name) + "_raw"

	ruleName := name + " - Multiple Failed Login Attempts"
	realtime := sampleRule(name, ruleName, dataset, uuid.NewString(), `execution_mode: REAL_TIME`)
	if err := writeFile(filepath.Join(rulesDir, ruleFilename(ruleName)), realtime); err != nil {
		return err
	}

	scheduledName := ruleName + "-Scheduled"
	scheduled := sampleRule(name, scheduledName, dataset, uuid.NewString(),
		"crontab: '*/10 * * * *'\nexecution_mode: SCHEDULED\nsearch_window: 10 minutes")
	return writeFile(filepath.Join(rulesDir, ruleFilename(scheduledName)), scheduled)
}

func ruleFilename(ruleName string) string {
	base := strings.ReplaceAll(ruleName, " ", "_")
	base = strings.ReplaceAll(base, "-", "_")
	return base + ".yml"
}

func sampleRule(packName, ruleName, dataset, globalID, execution string) string {
	return fmt.Sprintf(`action: ALERTS
alert_category: CREDENTIAL_ACCESS
alert_description: Multiple failed login attempts detected from $xdm.source.ipv4 targeting $xdm.target.user.username which may indicate a brute force attack.
alert_domain: DOMAIN_SECURITY
alert_fields:
  actor_effective_username: xdm.source.user.username
  agent_hostname: xdm.source.host.hostname
alert_name: %[1]s - Brute Force Attack Detected
alert_type: null
dataset: alerts
description: Detects multiple failed authentication attempts from a single source within a short time window indicating a potential brute force attack.
drilldown_query_timeframe: ALERT
%[5]s
fromversion: 8.4.0
global_rule_id: %[4]s
investigation_query_link: dataset = %[3]s | filter user = $xdm.target.user.username
is_enabled: true
mapping_strategy: CUSTOM
mitre_defs:
  TA0006 - Credential Access:
  - T1110 - Brute Force
name: %[2]s
severity: SEV_030_MEDIUM
suppression_duration: 1 hours
suppression_enabled: true
suppression_fields:
  - xdm.source.ipv4
  - xdm.target.user.username
xql_query: |
  datamodel dataset = %[3]s
  | filter xdm.event.type = "AUTHENTICATION" and xdm.event.outcome = "FAILED"
  | fields xdm.event.type, xdm.event.outcome, xdm.source.ipv4, xdm.source.host.hostname, xdm.target.user.username, xdm.source.user.username
`, packName, ruleName, dataset, globalID, execution)
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
