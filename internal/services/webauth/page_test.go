package webauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenPageFixture = `<!DOCTYPE html>
<html>
<head><title>API token</title>
<script>window.dataLayer = window.dataLayer || [];</script>
</head>
<body>
<input type="text" id="token" readonly>
<script>
	document.querySelectorAll('#token').forEach(function (el) {
		el.value = 'TOKEN999';
	});
</script>
</body>
</html>`

func TestExtractToken(t *testing.T) {
	token, err := ExtractToken([]byte(tokenPageFixture))
	require.NoError(t, err)
	assert.Equal(t, "TOKEN999", token)
}

func TestExtractToken_SpacedAssignment(t *testing.T) {
	page := `<html><body><script>document.querySelectorAll('#t');x.value   =   'ABCDEF123';</script></body></html>`
	token, err := ExtractToken([]byte(page))
	require.NoError(t, err)
	assert.Equal(t, "ABCDEF123", token)
}

func TestExtractToken_NoMarkerScript(t *testing.T) {
	page := `<html><body><script>console.log('nothing to see');</script></body></html>`
	_, err := ExtractToken([]byte(page))
	assert.ErrorContains(t, err, "token script not found")
}

func TestExtractToken_MarkerWithoutValue(t *testing.T) {
	page := `<html><body><script>document.querySelectorAll('#token');</script></body></html>`
	_, err := ExtractToken([]byte(page))
	assert.ErrorContains(t, err, "token value not found")
}

func TestExtractToken_EmptyPage(t *testing.T) {
	_, err := ExtractToken([]byte(""))
	assert.Error(t, err)
}
