package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roboco-io/chatcomp/internal/codec"
	"github.com/roboco-io/chatcomp/internal/config"
)

var (
	convertOutput     string
	convertFrom       string
	convertTo         string
	convertColorCodes bool
	convertAltChar    string
	convertPretty     bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file|->",
	Short: "메시지 형식 변환",
	Long: `채팅 메시지를 다른 형식으로 변환합니다.

입력 형식은 기본적으로 자동 감지됩니다. '{', '[', '"'로 시작하는 올바른
JSON(주석, 끝 쉼표 허용)은 JSON으로, 그 외에는 레거시 텍스트로 처리합니다.
레거시 입력의 URL은 클릭 가능한 링크 컴포넌트가 됩니다. § 코드는
--color-codes를 지정한 경우에만 스타일로 해석됩니다.

출력 형식:
  json    JSON 채팅 컴포넌트
  legacy  § 코드 텍스트
  plain   스타일 없는 텍스트
  ansi    터미널 색상

예시:
  chatcomp convert message.json --to legacy
  chatcomp convert motd.txt --color-codes --alt-char '&' --to json --pretty
  cat message.json | chatcomp convert - --to ansi`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	convertCmd.Flags().StringVar(&convertFrom, "from", "auto", "입력 형식 (auto, json, legacy, plain)")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "출력 형식 (json, legacy, plain, ansi; 기본: 설정값)")
	convertCmd.Flags().BoolVar(&convertColorCodes, "color-codes", false, "레거시 입력의 § 코드 해석")
	convertCmd.Flags().StringVar(&convertAltChar, "alt-char", "", "§ 대신 사용할 문자 (예: &)")
	convertCmd.Flags().BoolVar(&convertPretty, "pretty", false, "JSON 들여쓰기 적용")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	from, err := codec.ParseFormat(convertFrom)
	if err != nil {
		return err
	}
	to := cfg.DefaultFormat()
	if convertTo != "" {
		if to, err = codec.ParseFormat(convertTo); err != nil {
			return err
		}
	}

	opts := convertOptions(cmd, cfg)

	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	if from == codec.FormatUnknown {
		from = codec.DetectFormat(data)
	}
	log.Debug(fmt.Sprintf("converting %s to %s", from, to))

	components, err := codec.Decode(data, from, opts)
	if err != nil {
		return fmt.Errorf("메시지 파싱 실패: %w", err)
	}

	if convertOutput == "" {
		return codec.Write(cmd.OutOrStdout(), components, to, opts)
	}

	out, err := codec.Encode(components, to, opts)
	if err != nil {
		return fmt.Errorf("메시지 변환 실패: %w", err)
	}
	if err := writeOutput(cmd, convertOutput, out); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "변환 완료: %s\n", convertOutput)
	return nil
}

// convertOptions starts from the configured codec options and applies
// the flags the user set explicitly.
func convertOptions(cmd *cobra.Command, cfg *config.Config) codec.Options {
	opts := cfg.CodecOptions()
	flags := cmd.Flags()
	if flags.Changed("color-codes") {
		opts.ColorCodes = convertColorCodes
	}
	if flags.Changed("alt-char") {
		opts.AltColorChar = 0
		for _, r := range convertAltChar {
			opts.AltColorChar = r
			break
		}
	}
	if flags.Changed("pretty") {
		opts.Pretty = convertPretty
	}
	return opts
}
