package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tasneemkhan/portfolio/internal/content"
	"github.com/tasneemkhan/portfolio/internal/nav"
	"github.com/tasneemkhan/portfolio/internal/view"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write a static snapshot of the page",
	Long: `Render writes the page as a single HTML document with the site stylesheet
inlined. Tailwind still loads from its CDN, so the file needs network access
to be fully styled. The snapshot shows the loaded page; nav controls in it
highlight nothing since there is no server to answer them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := content.Load()
		if err != nil {
			return err
		}
		renderer, err := view.New(tables, view.Options{})
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if renderOutput != "" {
			if err := os.MkdirAll(filepath.Dir(renderOutput), 0o755); err != nil {
				return errors.Wrapf(err, "failed to create %s", filepath.Dir(renderOutput))
			}
			f, err := os.Create(renderOutput)
			if err != nil {
				return errors.Wrapf(err, "failed to create %s", renderOutput)
			}
			defer f.Close()
			w = f
		}

		if err := renderer.RenderPage(w, nav.Initial()); err != nil {
			return err
		}
		if renderOutput != "" {
			cmd.PrintErrf("Wrote %s\n", renderOutput)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}
