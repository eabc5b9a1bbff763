package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"storage": map[string]any{
			"backend": "postgres",
			"postgres": map[string]any{
				"sslMode": "disable",
				"dbName":  "lamsa",
			},
			"firestore": map[string]any{
				"projectId": "",
			},
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "STORAGE_POSTGRES_SSLMODE", want: "storage.postgres.sslMode"},
		{envKey: "STORAGE_POSTGRES_DBNAME", want: "storage.postgres.dbName"},
		{envKey: "STORAGE_FIRESTORE_PROJECTID", want: "storage.firestore.projectId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
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
