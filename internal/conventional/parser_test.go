package conventional_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breml/commitlint/internal/conventional"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		wantHeader  string
		wantBody    string
		wantFooter  string
		wantFooters []conventional.Footer
	}{
		{
			name:       "header only",
			message:    "feat: add feature",
			wantHeader: "feat: add feature",
		},
		{
			name:       "header only with trailing newline",
			message:    "feat: add feature\n",
			wantHeader: "feat: add feature",
		},
		{
			name:       "header and footer",
			message:    "feat: add feature\n\nSigned-off-by: John <j@ex.com>",
			wantHeader: "feat: add feature",
			wantFooter: "Signed-off-by: John <j@ex.com>",
			wantFooters: []conventional.Footer{
				{Token: "Signed-off-by", Separator: ": ", Value: "John <j@ex.com>"},
			},
		},
		{
			name:       "header and body",
			message:    "feat: add feature\n\nThis adds X.",
			wantHeader: "feat: add feature",
			wantBody:   "This adds X.",
		},
		{
			name:       "header, body, and footer",
			message:    "feat: add feature\n\nThis adds X.\n\nFixes #123",
			wantHeader: "feat: add feature",
			wantBody:   "This adds X.",
			wantFooter: "Fixes #123",
			wantFooters: []conventional.Footer{
				{Token: "Fixes", Separator: " #", Value: "123"},
			},
		},
		{
			name:       "multiple body sections with multi-line paragraphs",
			message:    "feat: add feature\n\nFirst para line 1.\nFirst para line 2.\n\nSecond para.\n\nFixes #123\nSigned-off-by: John <j@ex.com>",
			wantHeader: "feat: add feature",
			wantBody:   "First para line 1.\nFirst para line 2.\n\nSecond para.",
			wantFooter: "Fixes #123\nSigned-off-by: John <j@ex.com>",
			wantFooters: []conventional.Footer{
				{Token: "Fixes", Separator: " #", Value: "123"},
				{Token: "Signed-off-by", Separator: ": ", Value: "John <j@ex.com>"},
			},
		},
		{
			name:       "breaking change footer with continuation",
			message:    "feat!: drop v1\n\nBREAKING CHANGE: the v1 API is gone\nuse v2 instead",
			wantHeader: "feat!: drop v1",
			wantFooter: "BREAKING CHANGE: the v1 API is gone\nuse v2 instead",
			wantFooters: []conventional.Footer{
				{Token: "BREAKING CHANGE", Separator: ": ", Value: "the v1 API is gone\nuse v2 instead"},
			},
		},
		{
			name:       "body without blank line",
			message:    "feat: add feature\nbody line",
			wantHeader: "feat: add feature",
			wantBody:   "body line",
		},
		{
			name:       "windows line endings",
			message:    "feat: add feature\r\n\r\nBody.\r\n\r\nRefs: #1\r\n",
			wantHeader: "feat: add feature",
			wantBody:   "Body.",
			wantFooter: "Refs: #1",
			wantFooters: []conventional.Footer{
				{Token: "Refs", Separator: ": ", Value: "#1"},
			},
		},
		{
			name:    "empty message",
			message: "",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := conventional.Parse(testCase.message)

			assert.Equal(t, testCase.wantHeader, got.Header)
			assert.Equal(t, testCase.wantBody, got.Body)
			assert.Equal(t, testCase.wantFooter, got.Footer)
			assert.Equal(t, testCase.wantFooters, got.Footers)
		})
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		line    string
		want    conventional.Header
		wantErr error
	}{
		{
			line: "feat: add login",
			want: conventional.Header{Type: "feat", Description: "add login"},
		},
		{
			line: "fix(parser)!: handle   spaces",
			want: conventional.Header{
				Type:        "fix",
				Scope:       "parser",
				HasScope:    true,
				Breaking:    true,
				Description: "handle   spaces",
			},
		},
		{
			line: "docs:",
			want: conventional.Header{Type: "docs"},
		},
		{
			line:    "update stuff",
			wantErr: conventional.ErrMissingSeparator,
		},
		{
			line:    "chore(): cleanup",
			want:    conventional.Header{Type: "chore", HasScope: true, Description: "cleanup"},
			wantErr: conventional.ErrMalformedScope,
		},
		{
			line:    "chore(a b): cleanup",
			want:    conventional.Header{Type: "chore", Scope: "a b", HasScope: true, Description: "cleanup"},
			wantErr: conventional.ErrMalformedScope,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.line, func(t *testing.T) {
			got, err := conventional.ParseHeader(testCase.line)
			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, testCase.want, got)
		})
	}
}
