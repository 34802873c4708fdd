package main

import (
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-pageforms/pkg/formdef"
	"github.com/goliatone/go-pageforms/pkg/orchestrator"
	"github.com/goliatone/go-pageforms/pkg/wikipage"
)

const formsDirEnv = "PAGEFORMS_FORMS_DIR"

// app carries the persistent flags and the logger shared by subcommands.
type app struct {
	formsDir              string
	verbose               bool
	translatableTemplates bool
	translate             bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "pageforms",
		Short: "Generate wiki pages from page form definitions",
		Long: `pageforms turns the values submitted to a page form into the wikitext of
the page: template calls, headed sections and free text.

Forms are read from --forms (or $` + formsDirEnv + `); without one the bundled
example forms are used.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(cmd, a.verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.formsDir, "forms", os.Getenv(formsDirEnv), "directory holding form definitions (default: bundled examples)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.translatableTemplates, "translatable-templates", false, "emit template names through {{tntn|...}}")
	flags.BoolVar(&a.translate, "translate", false, "wrap translatable values in <translate> tags")

	root.AddCommand(
		newListCmd(a),
		newValidateCmd(a),
		newRenderCmd(a),
		newFillCmd(a),
	)
	return root
}

// newLogger writes structured logs to the command's stderr: warnings and
// errors by default, everything with --verbose.
func newLogger(cmd *cobra.Command, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	encoderConfig := zap.NewProductionEncoderConfig()
	if verbose {
		level = zapcore.DebugLevel
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(cmd.ErrOrStderr()),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}

func (a *app) formsFS() fs.FS {
	if a.formsDir == "" {
		return formdef.EmbeddedFS()
	}
	return os.DirFS(a.formsDir)
}

func (a *app) loadStore() (*formdef.Store, error) {
	store, err := formdef.LoadFS(a.formsFS())
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Loaded forms", zap.String("dir", a.formsDir), zap.Strings("forms", store.Names()))
	return store, nil
}

func (a *app) orchestrator(store *formdef.Store, extra ...orchestrator.Option) *orchestrator.Orchestrator {
	options := []orchestrator.Option{
		orchestrator.WithStore(store),
		orchestrator.WithLogger(a.logger),
		orchestrator.WithPageOptions(
			wikipage.WithTranslatableTemplates(a.translatableTemplates),
			wikipage.WithTranslationAvailable(a.translate),
		),
	}
	return orchestrator.New(append(options, extra...)...)
}
