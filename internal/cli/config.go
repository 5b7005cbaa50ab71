package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roboco-io/chatcomp/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "설정 관리",
	Long: `chatcomp 설정을 관리합니다.

설정 파일 위치: ~/.chatcomp/config.yaml (CHATCOMP_CONFIG 또는 --config로 변경)

하위 명령:
  show    현재 설정 표시
  init    기본 설정 파일 생성
  set     설정 값 변경
  path    설정 파일 경로 표시`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "현재 설정 표시",
	Long: `현재 설정 파일의 내용을 표시합니다.

설정 파일이 없으면 기본값이 표시됩니다.
CHATCOMP_* 환경 변수가 설정되어 있으면 함께 표시되며, 실행 시 파일 값보다 우선합니다.
설정 파일과 같은 디렉터리의 .env 파일도 읽지만, 이미 설정된 환경 변수가 우선합니다.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "기본 설정 파일 생성",
	Long: `기본 설정 파일을 ~/.chatcomp/config.yaml에 생성합니다.

이미 설정 파일이 있는 경우 오류가 발생합니다.
기존 파일을 덮어쓰려면 --force 플래그를 사용하세요.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "설정 값 변경",
	Long: `설정 값을 변경합니다.

지원하는 키:
  codec.default_format   기본 출력 형식 (json, legacy, plain, ansi)
  codec.color_codes      레거시 입력의 § 코드 해석 (true, false)
  codec.alt_color_char   § 대신 사용할 문자 (예: &)
  codec.pretty           JSON 들여쓰기 (true, false)
  codec.hyperlinks       터미널 링크 출력 (true, false)
  delivery.providers     프로바이더 우선순위, 쉼표 구분 (console, json, legacy)
  delivery.position      표시 위치 (chat, system, action_bar)
  log.level              로그 레벨 (debug, info, warn, error)
  log.human_readable     사람이 읽기 쉬운 로그 (true, false)
  messages.<이름>        이름 붙은 메시지 (JSON 또는 & 코드 텍스트)

예시:
  chatcomp config set codec.default_format legacy
  chatcomp config set messages.motd '&6Welcome &lback'`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "설정 파일 경로 표시",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return fmt.Errorf("설정 로더 초기화 실패: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
		return nil
	},
}

var configForce bool

// envOverrides lists the environment variables applied on load.
var envOverrides = []struct {
	key  string
	desc string
}{
	{config.ConfigPathEnv, "설정 파일 경로"},
	{"CHATCOMP_FORMAT", "기본 출력 형식"},
	{"CHATCOMP_COLOR_CODES", "§ 코드 해석"},
	{"CHATCOMP_ALT_COLOR_CHAR", "대체 코드 문자"},
	{"CHATCOMP_PRETTY", "JSON 들여쓰기"},
	{"CHATCOMP_HYPERLINKS", "터미널 링크"},
	{"CHATCOMP_PROVIDERS", "프로바이더 우선순위"},
	{"CHATCOMP_POSITION", "표시 위치"},
	{"CHATCOMP_LOG_LEVEL", "로그 레벨"},
	{"CHATCOMP_LOG_HUMAN", "사람이 읽기 쉬운 로그"},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "기존 설정 파일 덮어쓰기")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	out := cmd.OutOrStdout()
	if loader.Exists() {
		fmt.Fprintf(out, "설정 파일: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(out, "설정 파일: (기본값 사용)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("설정 출력 실패: %w", err)
	}
	fmt.Fprintln(out, string(data))

	dotenv := "(없음)"
	if _, err := os.Stat(loader.DotEnvPath()); err == nil {
		dotenv = loader.DotEnvPath()
	}
	fmt.Fprintf(out, ".env 파일: %s\n\n", dotenv)

	fmt.Fprintln(out, "환경 변수:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, ev := range envOverrides {
		status := "(미설정)"
		if value := os.Getenv(ev.key); value != "" {
			status = value
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, status)
	}
	return w.Flush()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("설정 파일이 이미 존재합니다: %s\n덮어쓰려면 --force 플래그를 사용하세요", loader.ConfigPath())
	}

	if err := loader.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("설정 파일 생성 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 파일 생성됨: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	if err := cfg.Set(key, value); err != nil {
		if !strings.HasPrefix(key, "messages.") && !contains(config.SettableKeys, key) {
			return fmt.Errorf("알 수 없는 설정 키: %s\n지원하는 키: %s, messages.<이름>", key, strings.Join(config.SettableKeys, ", "))
		}
		return fmt.Errorf("유효하지 않은 값: %w", err)
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("설정 저장 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 변경됨: %s = %s\n", key, value)
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
