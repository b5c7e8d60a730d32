package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"strings"
	"sync"
	"testing"
)

var (
	testPEMOnce sync.Once
	testPEM     string
)

// testPrivateKeyPEM returns a PKCS#8 PEM key shared by the package tests.
func testPrivateKeyPEM(t *testing.T) string {
	t.Helper()
	testPEMOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		der, err := x509.MarshalPKCS8PrivateKey(k)
		if err != nil {
			panic(err)
		}
		testPEM = string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
	})
	return testPEM
}

// testKeyJSON builds a service account key. With escaped set, the private
// key carries literal backslash-n sequences instead of newlines.
func testKeyJSON(t *testing.T, escaped bool, overrides map[string]any) string {
	t.Helper()
	pk := testPrivateKeyPEM(t)
	if escaped {
		pk = strings.ReplaceAll(pk, "\n", `\n`)
	}
	key := map[string]any{
		"type":           "service_account",
		"project_id":     "sheets-test",
		"private_key_id": "abc123",
		"private_key":    pk,
		"client_email":   "bot@sheets-test.iam.gserviceaccount.com",
		"client_id":      "1234567890",
		"token_uri":      "https://oauth2.googleapis.com/token",
	}
	for k, v := range overrides {
		if v == nil {
			delete(key, k)
			continue
		}
		key[k] = v
	}
	data, err := json.Marshal(key)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
