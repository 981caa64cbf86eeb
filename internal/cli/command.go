package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/bgrhyme/internal"
	"codeberg.org/snonux/bgrhyme/internal/logging"
)

// Runner carries out the subcommands once flags and config are resolved.
type Runner interface {
	Transcribe(ctx context.Context, words []string) error
	Key(ctx context.Context, words []string) error
	Rhymes(ctx context.Context) error
	Anagrams(ctx context.Context) error
	Check(ctx context.Context, word string) error
	Pron(ctx context.Context, title string) error
	Serve(ctx context.Context) error
	Models(ctx context.Context) error
}

// configKeys maps flag names to their viper keys. min-size is bound per
// subcommand.
var configKeys = map[string]string{
	"log-level":      "log.level",
	"log-format":     "log.format",
	"end-schwa":      "transcribe.end_schwa",
	"schwa-signal":   "transcribe.schwa_signal",
	"format":         "output.format",
	"output":         "output.path",
	"archive":        "output.archive",
	"workers":        "rhyme.workers",
	"accent-standin": "rhyme.accent_standin",
	"provider":       "reference.provider",
	"model":          "reference.model",
	"wiki-dir":       "wiki.dir",
	"addr":           "server.addr",
	"classes":        "server.classes",
	"allow-origin":   "server.origins",
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags, run Runner) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bgrhyme",
		Short: "Bulgarian phonemic transcription and rhyme classes",
		Long: `bgrhyme transcribes stress-marked Bulgarian words into IPA and groups
wordlists into rhyme and anagram classes.

Examples:
  bgrhyme transcribe как                             # kak
  bgrhyme rhymes --wordlist words.txt -o rhymes.json
  bgrhyme serve --classes rhymes.db`,
		Version:      internal.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			bindFlagsToViper(cmd)
			flags.Load(minSizeKey(cmd))
			_, err := logging.Init(flags.LogLevel, flags.LogFormat)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.bgrhyme.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")

	rootCmd.AddCommand(
		transcribeCommand(flags, run),
		keyCommand(flags, run),
		rhymesCommand(flags, run),
		anagramsCommand(flags, run),
		checkCommand(flags, run),
		pronCommand(flags, run),
		serveCommand(flags, run),
		modelsCommand(run),
		versionCommand(),
	)
	return rootCmd
}

func transcribeCommand(flags *Flags, run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcribe WORD...",
		Short: "Transcribe stress-marked words into IPA",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run.Transcribe(cmd.Context(), args)
		},
	}
	setupTranscribeFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.Trace, "trace", false, "Print the buffer after every pipeline stage")
	return cmd
}

func keyCommand(flags *Flags, run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key WORD...",
		Short: "Print the rhyme key of each word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run.Key(cmd.Context(), args)
		},
	}
	cmd.Flags().StringVar(&flags.StandIn, "accent-standin", flags.StandIn, "ASCII character standing in for the acute accent")
	return cmd
}

func rhymesCommand(flags *Flags, run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rhymes",
		Short: "Group a wordlist into rhyme classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run.Rhymes(cmd.Context())
		},
	}
	setupBuildFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.StandIn, "accent-standin", flags.StandIn, "ASCII character standing in for the acute accent")
	return cmd
}

func anagramsCommand(flags *Flags, run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anagrams",
		Short: "Group a wordlist into anagram classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run.Anagrams(cmd.Context())
		},
	}
	setupBuildFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.Templates, "templates", false, "Print the wiki anagrams template of every class")
	return cmd
}

func checkCommand(flags *Flags, run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check WORD",
		Short: "Compare a transcription with a reference from a language model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run.Check(cmd.Context(), args[0])
		},
	}
	setupTranscribeFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Reference provider: openai or gemini")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Reference model (default depends on the provider)")
	cmd.Flags().StringVar(&flags.SaveDir, "save-dir", "", "Directory to save phonetic.txt into")
	return cmd
}

func pronCommand(flags *Flags, run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pron TITLE",
		Short: "Transcribe the bg-IPA terms of a stored wiki page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run.Pron(cmd.Context(), args[0])
		},
	}
	cmd.Flags().StringVar(&flags.WikiDir, "wiki-dir", "", "Directory holding <title>.wiki pages")
	cmd.Flags().StringVar(&flags.AddTerm, "add", "", "Add a Pronunciation section for this stress-marked term when the page has none")
	return cmd
}

func serveCommand(flags *Flags, run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve transcriptions and rhyme lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run.Serve(cmd.Context())
		},
	}
	setupTranscribeFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.Addr, "addr", flags.Addr, "Listen address")
	cmd.Flags().StringVar(&flags.Classes, "classes", "", "Rhyme classes to answer lookups from (.json or .db)")
	cmd.Flags().StringSliceVar(&flags.Origins, "allow-origin", nil, "CORS origin allowed to call the API (repeatable, default all)")
	return cmd
}

func modelsCommand(run Runner) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models available to the configured API keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run.Models(cmd.Context())
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), internal.Version)
		},
	}
}

func setupTranscribeFlags(cmd *cobra.Command, flags *Flags) {
	cmd.Flags().BoolVar(&flags.EndSchwa, "end-schwa", false, "Pronounce a stressed final а as a schwa")
	cmd.Flags().BoolVar(&flags.SchwaSignal, "schwa-signal", flags.SchwaSignal, "Read an under-dotted а or я as a schwa")
}

func setupBuildFlags(cmd *cobra.Command, flags *Flags) {
	cmd.Flags().StringVarP(&flags.Wordlist, "wordlist", "w", "", "Wordlist file (one word per line)")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", flags.Format, "Output format: json, csv or sqlite")
	cmd.Flags().StringVarP(&flags.OutputPath, "output", "o", "", "Output file (default <command>.<format extension>)")
	cmd.Flags().IntVar(&flags.MinClassSize, "min-size", 0, "Smallest class kept (default depends on the command)")
	cmd.Flags().IntVar(&flags.Workers, "workers", 0, "Parallel workers (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "Rebuild even when the wordlist is unchanged")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Archive the previous output before writing")
	_ = cmd.MarkFlagRequired("wordlist")
}

func minSizeKey(cmd *cobra.Command) string {
	if cmd.Name() == "anagrams" {
		return "anagram.min_class_size"
	}
	return "rhyme.min_class_size"
}

func bindFlagsToViper(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "min-size" {
			viper.BindPFlag(minSizeKey(cmd), f)
			return
		}
		if key, ok := configKeys[f.Name]; ok {
			viper.BindPFlag(key, f)
		}
	})
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".bgrhyme" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bgrhyme")
	}

	// Environment variables
	viper.SetEnvPrefix("BGRHYME")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("reference.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("reference.gemini_key")
}

// GetAPIKey returns the key for the given reference provider.
func GetAPIKey(provider string) string {
	if strings.EqualFold(provider, "gemini") {
		return GetGeminiKey()
	}
	return GetOpenAIKey()
}
