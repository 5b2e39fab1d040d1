package normalizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/parser"
)

func newPetWebhook() *parser.PathItem {
	return &parser.PathItem{
		Post: &parser.Operation{
			OperationID: "newPet",
			RequestBody: &parser.RequestBody{
				Required: true,
				Content: map[string]*parser.MediaType{
					"application/json": {Schema: &parser.Schema{Type: "object"}},
				},
			},
			Responses: map[string]*parser.Response{
				"200": {
					Description: "ok",
					Content: map[string]*parser.MediaType{
						"application/json": {Schema: &parser.Schema{Type: "string"}},
					},
					Headers: map[string]*parser.Header{
						"X-Rate-Limit": {Required: true, Schema: &parser.Schema{Type: "integer"}},
					},
				},
			},
			Parameters: []*parser.Parameter{
				{Name: "verbose", In: "query", Schema: &parser.Schema{Type: "boolean"}},
				{Name: "X-Signature", In: "header", Required: true, Schema: &parser.Schema{Type: "string"}},
			},
		},
	}
}

func TestWebhookStructuring(t *testing.T) {
	w := &webhookStructurer{}
	hooks, infos, err := w.structure(map[string]*parser.PathItem{"newPet": newPetWebhook()})
	require.NoError(t, err)

	require.Contains(t, hooks, "newPet")
	hook := hooks["newPet"]
	assert.Equal(t, "object", hook.Type)
	require.Contains(t, hook.Properties, "post")

	post := hook.Properties["post"]
	assert.Equal(t, "object", post.Type)
	assert.Contains(t, post.Required, "requestBody")

	body := post.Properties["requestBody"]
	require.NotNil(t, body)
	require.Contains(t, body.Properties, "applicationJson", "media type key is camelCased")
	assert.Equal(t, "object", body.Properties["applicationJson"].Type)

	responses := post.Properties["responses"]
	require.NotNil(t, responses)
	require.Contains(t, responses.Properties, "200")
	ok := responses.Properties["200"]
	assert.Contains(t, ok.Properties, "applicationJson")
	require.Contains(t, ok.Properties, "headers")
	assert.Contains(t, ok.Properties["headers"].Properties, "X-Rate-Limit")
	assert.Contains(t, ok.Properties["headers"].Required, "X-Rate-Limit")

	params := post.Properties["parameters"]
	require.NotNil(t, params)
	assert.Contains(t, params.Properties, "verbose")
	assert.NotContains(t, params.Properties, "X-Signature", "header params live under headers")

	headers := post.Properties["headers"]
	require.NotNil(t, headers)
	assert.Contains(t, headers.Properties, "X-Signature")
	assert.Equal(t, []string{"X-Signature"}, headers.Required)

	require.Len(t, infos, 1)
	assert.Equal(t, "newPet", infos[0].Name)
	assert.Equal(t, []string{"post"}, infos[0].Methods)
}

func TestWebhookInvalidMethodFails(t *testing.T) {
	result, err := parser.Load([]byte(`openapi: 3.1.0
webhooks:
  bad:
    fetch:
      operationId: nope
`))
	require.NoError(t, err)

	w := &webhookStructurer{}
	_, _, err = w.structure(result.Document.Webhooks)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrStructural))
	var structErr *oaserrors.StructuralError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, "webhooks", structErr.Keyword)
	assert.Equal(t, "/webhooks/bad", structErr.Location)
	assert.Contains(t, structErr.Message, "fetch")
}

func TestWebhookEmptyOperationOmitted(t *testing.T) {
	w := &webhookStructurer{}
	hooks, infos, err := w.structure(map[string]*parser.PathItem{
		"useful": newPetWebhook(),
		"empty": {
			Get: &parser.Operation{OperationID: "nothingUsable"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, hooks, "useful")
	assert.NotContains(t, hooks, "empty", "operation with no content contributes nothing")
	require.Len(t, infos, 1)
}

func TestWebhookNoneUsable(t *testing.T) {
	w := &webhookStructurer{}
	hooks, infos, err := w.structure(map[string]*parser.PathItem{
		"empty": {},
	})
	require.NoError(t, err)
	assert.Nil(t, hooks)
	assert.Nil(t, infos)
}

func TestWebhookSchemasAreCopies(t *testing.T) {
	item := newPetWebhook()
	w := &webhookStructurer{}
	hooks, _, err := w.structure(map[string]*parser.PathItem{"newPet": item})
	require.NoError(t, err)

	hooks["newPet"].Properties["post"].Properties["requestBody"].Properties["applicationJson"].Type = "changed"
	assert.Equal(t, "object", item.Post.RequestBody.Content["application/json"].Schema.Type)
}

func TestWebhookMultipleSortedByName(t *testing.T) {
	w := &webhookStructurer{}
	hooks, infos, err := w.structure(map[string]*parser.PathItem{
		"zeta":  newPetWebhook(),
		"alpha": newPetWebhook(),
	})
	require.NoError(t, err)
	assert.Len(t, hooks, 2)
	require.Len(t, infos, 2)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, "zeta", infos[1].Name)
}
