package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/cargodesk/cargodesk/internal/testing/guard"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCommand()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["jobs"])
	assert.True(t, names["fx"])
}

func TestFXConvertCommand(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","date":"2024-03-15","rates":{"USD":1,"KRW":1300}}`))
	}))
	defer upstream.Close()
	t.Setenv("SESSION_SECRET", "test")
	t.Setenv("FX_API_URL", upstream.URL)
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"fx", "convert", "10", "usd", "krw"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Equal(t, "10.00 USD = 13000.00 KRW (rate 1300, api 2024-03-15)\n", out.String())
}

func TestFXConvertRejectsBadAmount(t *testing.T) {
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"fx", "convert", "ten", "USD", "KRW"})
	assert.Error(t, root.ExecuteContext(context.Background()))
}

func TestJobsTriggerRequiresTask(t *testing.T) {
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"jobs", "trigger"})
	assert.Error(t, root.ExecuteContext(context.Background()))
}
