package cli

import (
	"github.com/spf13/viper"

	"codeberg.org/snonux/bgrhyme/internal/export"
	"codeberg.org/snonux/bgrhyme/internal/rhyme"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile   string
	LogLevel  string
	LogFormat string

	// Transcription flags
	EndSchwa    bool
	SchwaSignal bool
	Trace       bool

	// Class build flags
	Wordlist     string
	Format       string
	OutputPath   string
	MinClassSize int
	Workers      int
	StandIn      string
	Force        bool
	Archive      bool
	Templates    bool

	// Reference check flags
	Provider string
	Model    string
	SaveDir  string

	// Wiki flags
	WikiDir string
	AddTerm string

	// Server flags
	Addr    string
	Classes string
	Origins []string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogLevel:    "info",
		LogFormat:   "text",
		SchwaSignal: true,
		Format:      string(export.FormatJSON),
		StandIn:     rhyme.DefaultStandIn,
		Provider:    "openai",
		Addr:        ":8080",
	}
}

// Load copies every configured value (bound flag, config file or
// environment) over the current field values.
func (f *Flags) Load(minSizeKey string) {
	loadString("log.level", &f.LogLevel)
	loadString("log.format", &f.LogFormat)
	loadBool("transcribe.end_schwa", &f.EndSchwa)
	loadBool("transcribe.schwa_signal", &f.SchwaSignal)
	loadString("output.format", &f.Format)
	loadString("output.path", &f.OutputPath)
	loadBool("output.archive", &f.Archive)
	loadInt(minSizeKey, &f.MinClassSize)
	loadInt("rhyme.workers", &f.Workers)
	loadString("rhyme.accent_standin", &f.StandIn)
	loadString("reference.provider", &f.Provider)
	loadString("reference.model", &f.Model)
	loadString("wiki.dir", &f.WikiDir)
	loadString("server.addr", &f.Addr)
	loadString("server.classes", &f.Classes)
	if viper.IsSet("server.origins") {
		f.Origins = viper.GetStringSlice("server.origins")
	}
}

func loadString(key string, dst *string) {
	if viper.IsSet(key) {
		*dst = viper.GetString(key)
	}
}

func loadBool(key string, dst *bool) {
	if viper.IsSet(key) {
		*dst = viper.GetBool(key)
	}
}

func loadInt(key string, dst *int) {
	if viper.IsSet(key) {
		*dst = viper.GetInt(key)
	}
}
