package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/agent-console/internal/render"
)

func TestPrompt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "plain text",
			input:    "You are a helpful assistant.",
			contains: []string{"<p>You are a helpful assistant.</p>"},
		},
		{
			name:     "emphasis and lists",
			input:    "**Always** be polite.\n\n- greet\n- help\n",
			contains: []string{"<strong>Always</strong>", "<li>greet</li>", "<li>help</li>"},
		},
		{
			name:     "script stripped",
			input:    "Hello <script>alert(1)</script>",
			excludes: []string{"<script>", "alert(1)</script>"},
		},
		{
			name:     "javascript link stripped",
			input:    "[click](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
		{
			name:  "empty",
			input: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := render.Prompt(tt.input)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}
