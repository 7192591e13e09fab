package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oisee/simontool/internal/obs"
	"github.com/oisee/simontool/pkg/hexcodec"
	"github.com/oisee/simontool/pkg/logfmt"
	"github.com/oisee/simontool/pkg/simon"
	"github.com/oisee/simontool/pkg/waveform"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "simontool",
		Short: "SIMON 32/64 bit-serial datapath simulator",
	}

	var (
		keyHex      string
		blockHex    string
		blockBits   int
		keyBits     int
		clockLimit  int
		logPath     string
		logFormat   string
		strobeDir   string
		voltage     string
		snapshotOut string
	)

	bindCommonFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&keyHex, "key", "", "key, as hex (zero-padded on the right if short)")
		cmd.Flags().StringVar(&blockHex, "block", "", "plaintext/ciphertext block, as hex")
		cmd.Flags().IntVar(&blockBits, "block-bits", 32, "block width in bits")
		cmd.Flags().IntVar(&keyBits, "key-bits", 64, "key width in bits")
		cmd.Flags().IntVar(&clockLimit, "clock-limit", 0, "bit-clock limit (0 = n*T)")
		cmd.Flags().StringVar(&logPath, "log", "", "log snapshot output file (empty = none)")
		cmd.Flags().StringVar(&logFormat, "log-format", "plain", "log format: plain, latex, json")
		cmd.Flags().StringVar(&strobeDir, "strobe", "", "directory to write per-signal .pwl strobe files into")
		cmd.Flags().StringVar(&voltage, "voltage", "3.3", "nominal high voltage for strobe files")
		cmd.Flags().StringVar(&snapshotOut, "snapshot", "", "write a gob-encoded register snapshot to this file after the run (empty = none)")

		viper.BindPFlag("key", cmd.Flags().Lookup("key"))
		viper.BindPFlag("block", cmd.Flags().Lookup("block"))
		viper.BindPFlag("clock-limit", cmd.Flags().Lookup("clock-limit"))
	}

	runSession := func(cmd *cobra.Command, dir func(cfg simon.Config, key, block []byte) (*simon.Session, error)) error {
		log := obs.New(nil, slog.LevelInfo)

		cfg, err := simon.NewConfig(blockBits, keyBits)
		if err != nil {
			return fmt.Errorf("configuration rejected: %w", err)
		}

		key, err := hexcodec.DecodeBytes(keyHex, cfg.KeyHexChars()/2)
		if err != nil {
			return fmt.Errorf("invalid --key: %w", err)
		}
		block, err := hexcodec.DecodeBytes(blockHex, cfg.BlockHexChars()/2)
		if err != nil {
			return fmt.Errorf("invalid --block: %w", err)
		}

		sess, err := dir(cfg, key, block)
		if err != nil {
			return fmt.Errorf("session setup failed: %w", err)
		}

		if logPath != "" {
			f, err := os.Create(logPath)
			if err != nil {
				return fmt.Errorf("cannot create --log file: %w", err)
			}
			defer f.Close()
			group := cfg.WordSize / (2 * cfg.KeyWords)
			switch strings.ToLower(logFormat) {
			case "plain":
				sess.Seq.LogSink = logfmt.NewPlainWriter(f, group)
			case "latex":
				sess.Seq.LogSink = logfmt.NewLaTeXWriter(f, group)
			case "json":
				sess.Seq.LogSink = logfmt.NewJSONWriter(f)
			default:
				return fmt.Errorf("unknown --log-format %q", logFormat)
			}
		}

		if strobeDir != "" {
			if err := os.MkdirAll(strobeDir, 0o755); err != nil {
				return fmt.Errorf("cannot create --strobe dir: %w", err)
			}
			sinks, closers, err := openStrobeSinks(strobeDir, voltage)
			if err != nil {
				return fmt.Errorf("cannot open strobe files: %w", err)
			}
			for _, c := range closers {
				defer c.Close()
			}
			sess.Seq.StrobeSink = waveform.NewMultiWriter(sinks...)
		}

		log.Info("session starting", "key_bits", cfg.KeyBits, "block_bits", cfg.BlockBits, "clock_limit", clockLimit)
		out, err := sess.Run(context.Background(), clockLimit)
		if err != nil {
			log.Error("session aborted", "error", err)
			return err
		}
		log.Info("session complete", "ticks", sess.Seq.K0)

		if snapshotOut != "" {
			snap := simon.TakeSnapshot(sess)
			if err := simon.Save(snapshotOut, snap); err != nil {
				return fmt.Errorf("cannot write --snapshot file: %w", err)
			}
		}

		fmt.Printf("output: %x\n", out)
		return nil
	}

	encryptCmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Run an encrypt session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, func(cfg simon.Config, key, block []byte) (*simon.Session, error) {
				return simon.NewEncryptSession(cfg, key, block)
			})
		},
	}
	bindCommonFlags(encryptCmd)

	decryptCmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Run a decrypt session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, func(cfg simon.Config, key, block []byte) (*simon.Session, error) {
				return simon.NewDecryptSession(cfg, key, block)
			})
		},
	}
	bindCommonFlags(decryptCmd)

	rootCmd.AddCommand(encryptCmd, decryptCmd)

	viper.SetEnvPrefix("SIMONTOOL")
	viper.AutomaticEnv()
	viper.SetConfigName(".simontool")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	_ = viper.ReadInConfig() // optional; absence is not an error

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// strobeSignals names a .pwl file and the bit it extracts from each tick,
// matching simon.c's fp_key_mux1/fp_crypto_mux0/… one-file-per-signal set.
var strobeSignals = []struct {
	name    string
	isClock bool
	extract func(simon.TickEvent) bool
}{
	{"clock", true, waveform.ClockSignal},
	{"lfsr", false, waveform.LFSRSignal},
	{"z", false, waveform.ZSignal},
	{"key_bit", false, waveform.KeyBitSignal},
	{"key_mux1", false, waveform.KeyMux1},
	{"key_mux3", false, waveform.KeyMux3},
	{"key_mux4", false, waveform.KeyMux4},
	{"crypto_bit", false, waveform.CryptoBitSignal},
	{"crypto_mux0", false, waveform.CryptoMux0},
	{"crypto_mux1", false, waveform.CryptoMux1},
	{"crypto_mux8", false, waveform.CryptoMux8},
}

// openStrobeSinks opens one <dir>/<signal>.pwl file per named signal and
// returns both the wrapped StrobeSinks and the underlying files for the
// caller to close.
func openStrobeSinks(dir, voltage string) ([]simon.StrobeSink, []*os.File, error) {
	sinks := make([]simon.StrobeSink, 0, len(strobeSignals))
	files := make([]*os.File, 0, len(strobeSignals))
	for _, sig := range strobeSignals {
		f, err := os.Create(filepath.Join(dir, sig.name+".pwl"))
		if err != nil {
			for _, opened := range files {
				opened.Close()
			}
			return nil, nil, err
		}
		files = append(files, f)
		sinks = append(sinks, waveform.NewWriter(f, voltage, sig.isClock, sig.extract))
	}
	return sinks, files, nil
}
