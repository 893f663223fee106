package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"pipeline": map[string]any{
			"rawPath":       "./data/raw",
			"processedPath": "./data/processed",
		},
		"insight": map[string]any{
			"baseUrl": "",
		},
		"generator": map[string]any{
			"startDate": "2023-01-01",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "PIPELINE_RAWPATH", want: "pipeline.rawPath"},
		{envKey: "PIPELINE_PROCESSEDPATH", want: "pipeline.processedPath"},
		{envKey: "INSIGHT_BASEURL", want: "insight.baseUrl"},
		{envKey: "GENERATOR_STARTDATE", want: "generator.startDate"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
