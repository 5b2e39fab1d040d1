package normalizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/parser"
)

const sampleDoc = `openapi: 3.1.0
info:
  title: Pet Events
  version: 1.0.0
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
        tag:
          type: [string, "null"]
    Plain:
      type: string
webhooks:
  newPet:
    post:
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
`

func loadDoc(t *testing.T, content string) *parser.Document {
	t.Helper()
	result, err := parser.Load([]byte(content))
	require.NoError(t, err)
	return result.Document
}

func TestNormalizeDocument(t *testing.T) {
	doc := loadDoc(t, sampleDoc)

	cache, err := NewCache()
	require.NoError(t, err)
	res, err := NormalizeDocument(doc, WithCache(cache))
	require.NoError(t, err)

	assert.True(t, res.Version.IsVersion31)
	assert.True(t, res.Changed)
	require.Len(t, res.Schemas, 2)

	pet := res.Schemas["Pet"]
	require.NotNil(t, pet)
	assert.True(t, pet.Changed)
	assert.Equal(t, "string", pet.Schema.Properties["tag"].Type)
	assert.True(t, pet.Schema.Properties["tag"].Nullable)

	plain := res.Schemas["Plain"]
	require.NotNil(t, plain)
	assert.False(t, plain.Changed)

	// webhooks are off by default
	assert.Nil(t, res.Webhooks)

	// source document untouched
	assert.Equal(t, []string{"string", "null"}, doc.Components.Schemas["Pet"].Properties["tag"].Type)
}

func TestNormalizeDocumentWebhooks(t *testing.T) {
	doc := loadDoc(t, sampleDoc)

	opts := DefaultOptions()
	opts.EnableWebhooks = true
	cache, err := NewCache()
	require.NoError(t, err)

	res, err := NormalizeDocument(doc, WithOptions(opts), WithCache(cache))
	require.NoError(t, err)

	require.Contains(t, res.Webhooks, "newPet")
	require.Len(t, res.WebhookInfos, 1)
	assert.Equal(t, "newPet", res.WebhookInfos[0].Name)
	assert.Equal(t, []string{"post"}, res.WebhookInfos[0].Methods)
	assert.True(t, res.Changed)
}

func TestNormalizeDocumentWebhooksSkippedUnderFallback(t *testing.T) {
	doc := loadDoc(t, sampleDoc)

	opts := DefaultOptions()
	opts.EnableWebhooks = true
	opts.FallbackToOpenAPI30 = true
	cache, err := NewCache()
	require.NoError(t, err)

	res, err := NormalizeDocument(doc, WithOptions(opts), WithCache(cache))
	require.NoError(t, err)

	assert.True(t, res.Version.IsVersion30, "fallback downgrades the working version")
	assert.Nil(t, res.Webhooks, "webhook structuring requires a 3.1 document")
}

func TestNormalizeDocumentNil(t *testing.T) {
	_, err := NormalizeDocument(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestNormalizeDocumentMissingVersion(t *testing.T) {
	_, err := NormalizeDocument(&parser.Document{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrVersion))
}

func TestNormalizeDocumentSchemaErrorNamesSchema(t *testing.T) {
	doc := loadDoc(t, `openapi: 3.1.0
info:
  title: Broken
  version: 1.0.0
components:
  schemas:
    Bad:
      type: array
      contains:
        type: string
      minContains: 3
      maxContains: 1
`)

	cache, err := NewCache()
	require.NoError(t, err)
	_, err = NormalizeDocument(doc, WithCache(cache))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `normalizing schema "Bad"`)
	assert.True(t, errors.Is(err, oaserrors.ErrStructural))
}

func TestNormalizeDocumentOptionValidation(t *testing.T) {
	doc := loadDoc(t, sampleDoc)

	_, err := NormalizeDocument(doc, WithCache(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))

	_, err = NormalizeDocument(doc, WithLogger(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestNormalizeDocumentWithLogger(t *testing.T) {
	doc := loadDoc(t, sampleDoc)

	cache, err := NewCache()
	require.NoError(t, err)
	logger := &recordingLogger{}
	_, err = NormalizeDocument(doc, WithCache(cache), WithLogger(logger))
	require.NoError(t, err)
	require.NotEmpty(t, logger.infos)
	assert.Equal(t, "normalized document", logger.infos[len(logger.infos)-1])
}

type recordingLogger struct {
	debugs []string
	infos  []string
}

func (l *recordingLogger) Debug(msg string, _ ...any)  { l.debugs = append(l.debugs, msg) }
func (l *recordingLogger) Info(msg string, _ ...any)   { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Warn(_ string, _ ...any)     {}
func (l *recordingLogger) Error(_ string, _ ...any)    {}
func (l *recordingLogger) With(_ ...any) parser.Logger { return l }
