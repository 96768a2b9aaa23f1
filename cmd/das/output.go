package das

import (
	"github.com/arthur-debert/das/pkg/config"
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/reconcile"
	"github.com/arthur-debert/das/pkg/status"
	"github.com/spf13/cobra"
)

// styles binds the status styles to the command output, honouring the
// configured color mode.
func (a *app) styles(cmd *cobra.Command) *status.Styles {
	mode := a.color
	if mode == "" {
		mode = config.ColorAuto
	}
	out := cmd.OutOrStdout()
	return status.DefaultStyles(status.NewRenderer(out, status.UseColor(mode, out)))
}

// The print helpers run inside session updates; a failed write to the
// terminal must not discard the change.

func (a *app) printSelection(cmd *cobra.Command, set pathset.PathSet) {
	_ = status.RenderSelection(cmd.OutOrStdout(), set, a.styles(cmd))
}

func (a *app) printResult(cmd *cobra.Command, res *reconcile.Result) {
	_ = status.RenderResult(cmd.OutOrStdout(), res, a.styles(cmd))
}
