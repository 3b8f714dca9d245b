package framework

import (
	"regexp"
	"sort"
	"strings"
)

// Definition describes how a framework is recognised from a test file.
type Definition struct {
	// FilenamePattern, when set, identifies the framework from the path alone.
	FilenamePattern *regexp.Regexp
	// ImportPaths are module specifiers that identify the framework.
	// An entry ending in "/" matches any sub-path.
	ImportPaths []string
	Name        string
	Priority    int
}

// MatchImport reports whether importPath refers to this framework.
func (d *Definition) MatchImport(importPath string) bool {
	for _, p := range d.ImportPaths {
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(importPath, p) {
				return true
			}
			continue
		}
		if importPath == p {
			return true
		}
	}
	return false
}

// MatchFilename reports whether path follows this framework's naming convention.
func (d *Definition) MatchFilename(path string) bool {
	return d.FilenamePattern != nil && d.FilenamePattern.MatchString(path)
}

var definitions = sortByPriority([]*Definition{
	{
		Name:            FrameworkCypress,
		ImportPaths:     []string{"cypress", "cypress/"},
		FilenamePattern: regexp.MustCompile(`\.cy\.(js|jsx|ts|tsx)$`),
		Priority:        PriorityE2E,
	},
	{
		Name:        FrameworkJasmine,
		ImportPaths: []string{"jasmine", "jasmine-core"},
		Priority:    PriorityGeneric,
	},
	{
		Name:        FrameworkJest,
		ImportPaths: []string{"@jest/globals", "@jest/", "jest"},
		Priority:    PriorityGeneric,
	},
	{
		Name:        FrameworkMocha,
		ImportPaths: []string{"mocha", "chai", "chai/"},
		Priority:    PriorityGeneric,
	},
	{
		Name:        FrameworkNodeTest,
		ImportPaths: []string{"node:test", "node:assert", "node:assert/"},
		Priority:    PriorityGeneric,
	},
	{
		Name:        FrameworkPlaywright,
		ImportPaths: []string{"@playwright/test", "@playwright/test/"},
		Priority:    PriorityE2E,
	},
	{
		Name:        FrameworkVitest,
		ImportPaths: []string{"vitest", "vitest/"},
		Priority:    PrioritySpecialized,
	},
})

func sortByPriority(defs []*Definition) []*Definition {
	sort.SliceStable(defs, func(i, j int) bool {
		if defs[i].Priority != defs[j].Priority {
			return defs[i].Priority > defs[j].Priority
		}
		return defs[i].Name < defs[j].Name
	})
	return defs
}

// Definitions returns the known frameworks in detection order.
func Definitions() []*Definition {
	return append([]*Definition(nil), definitions...)
}

// Resolve picks the framework for a file from its path and import specifiers.
// A filename convention wins over imports; among imports the highest priority
// framework wins. FrameworkDefault is returned when nothing matches.
func Resolve(path string, imports []string) string {
	for _, def := range definitions {
		if def.MatchFilename(path) {
			return def.Name
		}
	}

	for _, def := range definitions {
		for _, imp := range imports {
			if def.MatchImport(imp) {
				return def.Name
			}
		}
	}

	return FrameworkDefault
}
