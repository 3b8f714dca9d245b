package jstest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/smellscan/pkg/domain"
	"github.com/specvital/smellscan/pkg/parser/tspool"
)

func TestExtractImports(t *testing.T) {
	t.Parallel()

	source := []byte(`import { describe, it } from 'vitest';
import './setup';
import { render } from "@testing-library/react";
const sinon = require('sinon');
const again = require('sinon');
const dynamic = require(name);
`)

	tree, err := tspool.Parse(context.Background(), domain.LanguageTypeScript, source)
	require.NoError(t, err)
	defer tree.Close()

	got := ExtractImports(tree.RootNode(), source, domain.LanguageTypeScript)

	assert.Equal(t, []string{"vitest", "./setup", "@testing-library/react", "sinon"}, got)
}
