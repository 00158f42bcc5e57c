package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeInput(t *testing.T) {
	cv := NewCustomValidator()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text unchanged",
			input:    "読書メモ",
			expected: "読書メモ",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "  小説  ",
			expected: "小説",
		},
		{
			name:     "collapses consecutive spaces",
			input:    "夏目   漱石",
			expected: "夏目 漱石",
		},
		{
			name:     "escapes HTML",
			input:    "<script>alert('x')</script>",
			expected: "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cv.SanitizeInput(tt.input))
		})
	}
}

func TestSanitizeTags(t *testing.T) {
	cv := NewCustomValidator()

	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "keeps first-appearance order",
			input:    []string{"小説", "古典", "小説"},
			expected: []string{"小説", "古典"},
		},
		{
			name:     "drops empty tags",
			input:    []string{"", "  ", "随筆"},
			expected: []string{"随筆"},
		},
		{
			name:     "trims surrounding whitespace",
			input:    []string{" 小説 ", "古典"},
			expected: []string{"小説", "古典"},
		},
		{
			name:     "values pass through verbatim",
			input:    []string{"C++", "Web3.0", "SF", "本&漫画", "経営"},
			expected: []string{"C++", "Web3.0", "SF", "本&漫画", "経営"},
		},
		{
			name:     "nil input",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cv.SanitizeTags(tt.input))
		})
	}
}

func TestValidateSafeTag(t *testing.T) {
	cv := NewCustomValidator()

	type tagged struct {
		Tag string `validate:"safe_tag"`
	}

	tests := []struct {
		name    string
		tag     string
		wantErr bool
	}{
		{"japanese tag", "自己啓発", false},
		{"alphanumeric tag", "tech-book_2024", false},
		{"empty tag allowed", "", false},
		{"script injection", "<script>", true},
		{"sql fragment", "'; DROP TABLE books; --", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.Validate(tagged{Tag: tt.tag})
			if tt.wantErr {
				assert.Error(t, err)

				var ve ValidationErrors
				assert.ErrorAs(t, err, &ve)
				assert.Len(t, ve.Errors, 1)
				assert.Equal(t, "safe_tag", ve.Errors[0].Tag)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	cv := NewCustomValidator()

	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{"valid ID", "42", 42, false},
		{"zero is rejected", "0", 0, true},
		{"negative sign is rejected", "-1", 0, true},
		{"non-numeric", "abc", 0, true},
		{"too long", "12345678901", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := cv.ValidateID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, id)
			}
		})
	}
}
