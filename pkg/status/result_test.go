package status

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSelection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSelection(&buf, pathset.New("docs/a.txt", "img"), plainStyles(&buf)))
	assert.Equal(t, "2 selected\n  docs/a.txt\n  img\n", buf.String())
}

func TestRenderResult(t *testing.T) {
	tests := []struct {
		name string
		res  reconcile.Result
		want string
	}{
		{
			name: "applied",
			res: reconcile.Result{
				Operation: reconcile.OpCopy,
				Root:      "/mnt/partner",
				Dirs:      []string{"notes"},
				Files:     []string{"notes/todo.md"},
			},
			want: "copy /mnt/partner: 1 directories, 1 files\n  notes/todo.md\n",
		},
		{
			name: "skips and dry run",
			res: reconcile.Result{
				Operation: reconcile.OpRemove,
				Root:      "/base",
				Skipped:   []reconcile.Skip{{Path: "gone.txt", Reason: reconcile.SkipMissing}},
				DryRun:    true,
			},
			want: "remove /base: 0 directories, 0 files\n  skipped gone.txt (missing)\n" + DryRunNotice + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderResult(&buf, &tt.res, plainStyles(&buf)))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderResultStyled(t *testing.T) {
	var buf bytes.Buffer
	res := &reconcile.Result{Operation: reconcile.OpTouch, Root: "/p", Files: []string{"a"}}
	require.NoError(t, RenderResult(&buf, res, DefaultStyles(NewRenderer(&buf, true))))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "  a\n")
}
