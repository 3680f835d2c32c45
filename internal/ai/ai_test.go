package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type item struct {
	Label string `json:"label"`
	Days  []int  `json:"days"`
}

func TestDecodeArray(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []item
		wantErr error
	}{
		{"plain", `[{"label":"Gym","days":[1,3]}]`, []item{{"Gym", []int{1, 3}}}, nil},
		{"fenced", "```json\n[{\"label\":\"Read\",\"days\":[0]}]\n```", []item{{"Read", []int{0}}}, nil},
		{"empty array", `[]`, []item{}, nil},
		{"blank", "  \n", nil, ErrEmptyResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeArray[item]([]byte(tt.raw))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeArrayRejectsObject(t *testing.T) {
	_, err := DecodeArray[item]([]byte(`{"label":"Gym"}`))
	assert.Error(t, err)
}

func TestToGenaiSchema(t *testing.T) {
	s := ArrayOf(&Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"title":    String("The title."),
			"category": {Type: TypeString, Enum: []string{"Work", "Other"}},
			"days":     ArrayOf(&Schema{Type: TypeInteger}),
		},
		Required: []string{"title"},
	})

	got := toGenaiSchema(s)
	require.NotNil(t, got)
	assert.Equal(t, genai.TypeArray, got.Type)
	require.NotNil(t, got.Items)
	assert.Equal(t, genai.TypeObject, got.Items.Type)
	assert.Equal(t, []string{"title"}, got.Items.Required)
	assert.Equal(t, "The title.", got.Items.Properties["title"].Description)
	assert.Equal(t, []string{"Work", "Other"}, got.Items.Properties["category"].Enum)
	assert.Equal(t, genai.TypeInteger, got.Items.Properties["days"].Items.Type)
	assert.Nil(t, toGenaiSchema(nil))
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), " ")
	assert.EqualError(t, err, "gemini API key is required")
}
