// Package cli implements the chatcomp command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roboco-io/chatcomp/internal/config"
	"github.com/roboco-io/chatcomp/internal/logging"
)

var version = "dev"

var (
	rootConfigPath string
	rootLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "chatcomp",
	Short: "채팅 컴포넌트 변환 및 전송 도구",
	Long: `chatcomp는 채팅 컴포넌트 메시지를 JSON, 레거시(§ 코드), 일반 텍스트,
터미널(ANSI) 형식 사이에서 변환하고 전송합니다.

예시:
  chatcomp convert message.json --to legacy
  echo '&6Hello &lworld' | chatcomp convert - --color-codes --alt-char '&' --to json
  chatcomp inspect message.json
  chatcomp send @welcome --recipient steve`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "chatcomp %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "설정 파일 경로 (기본: ~/.chatcomp/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "로그 레벨 (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func newLoader() (*config.Loader, error) {
	if rootConfigPath != "" {
		return config.NewLoaderWithPath(rootConfigPath), nil
	}
	return config.NewLoader()
}

// loadSettings loads the configuration and builds a logger writing to
// the command's error stream.
func loadSettings(cmd *cobra.Command) (*config.Config, *logging.Logger, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, nil, fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("설정 로드 실패: %w", err)
	}

	level := cfg.Log.Level
	if rootLogLevel != "" {
		level = rootLogLevel
	}
	log, err := logging.New(logging.Options{
		Level:         level,
		HumanReadable: cfg.Log.HumanReadable,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("로거 초기화 실패: %w", err)
	}
	log.Debug(fmt.Sprintf("config loaded from %s", loader.ConfigPath()))
	return cfg, log, nil
}

// readInput reads a file, or the command's input when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("표준 입력 읽기 실패: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("파일을 찾을 수 없습니다: %s", path)
		}
		return nil, fmt.Errorf("파일 읽기 실패: %w", err)
	}
	return data, nil
}

// writeOutput writes to a file, or to the command's output when path is
// empty.
func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), content)
		return err
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	return nil
}
