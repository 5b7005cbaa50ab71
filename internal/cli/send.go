package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roboco-io/chatcomp/internal/codec"
	"github.com/roboco-io/chatcomp/internal/codec/ansi"
	"github.com/roboco-io/chatcomp/internal/config"
	"github.com/roboco-io/chatcomp/internal/delivery"
)

var (
	sendRecipient string
	sendPosition  string
	sendProviders string
	sendRaw       bool
)

var sendCmd = &cobra.Command{
	Use:   "send <text|@name>",
	Short: "메시지 전송",
	Long: `메시지를 설정된 전송 프로바이더로 보냅니다.

프로바이더는 우선순위 순서대로 검사하여 사용 가능한 첫 번째를 선택합니다.
선택된 프로바이더가 실패하면 경고를 남기고 레거시 텍스트로 다시 보냅니다.
--raw를 지정하면 대체 전송 없이 오류를 반환합니다.

@이름 형식은 설정 파일 messages 항목의 메시지를 보냅니다.

예시:
  chatcomp send '&6Hello &lworld' --recipient steve
  chatcomp send @welcome --position action_bar
  chatcomp send '{"text":"hi","bold":true}' --provider json`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVarP(&sendRecipient, "recipient", "r", "", "받는 사람")
	sendCmd.Flags().StringVarP(&sendPosition, "position", "p", "", "표시 위치 (chat, system, action_bar; 기본: 설정값)")
	sendCmd.Flags().StringVar(&sendProviders, "provider", "", "프로바이더 우선순위, 쉼표 구분 (기본: 설정값)")
	sendCmd.Flags().BoolVar(&sendRaw, "raw", false, "레거시 대체 전송 없이 전송")

	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	message, err := resolveMessage(cfg, args[0])
	if err != nil {
		return err
	}

	position := cfg.Position()
	if sendPosition != "" {
		if position, err = delivery.ParsePosition(sendPosition); err != nil {
			return err
		}
	}

	priority := cfg.Delivery.Providers
	if sendProviders != "" {
		priority = strings.Split(sendProviders, ",")
		for i := range priority {
			priority[i] = strings.TrimSpace(priority[i])
		}
	}

	registry := delivery.NewDefaultRegistry(cmd.OutOrStdout(), ansi.WithHyperlinks(cfg.Codec.Hyperlinks))
	sender, err := delivery.NewSenderFromRegistry(registry, priority, log)
	if err != nil {
		return fmt.Errorf("전송 프로바이더 선택 실패: %w", err)
	}

	env := delivery.NewEnvelope(sendRecipient, position, message...)
	log.With("envelope", env.ID.String()).Debug(fmt.Sprintf("sending via %s", sender.Primary().Name()))

	if sendRaw {
		err = sender.SendRaw(cmd.Context(), env)
	} else {
		err = sender.Send(cmd.Context(), env)
	}
	if err != nil {
		return fmt.Errorf("전송 실패: %w", err)
	}
	return nil
}

// resolveMessage looks up "@name" in the configuration and decodes
// anything else with the configured codec options.
func resolveMessage(cfg *config.Config, arg string) (codec.Message, error) {
	if name, ok := strings.CutPrefix(arg, "@"); ok && name != "" {
		m, found := cfg.Message(name)
		if !found {
			return nil, fmt.Errorf("설정에 없는 메시지: %s", name)
		}
		return m, nil
	}

	components, err := codec.Decode([]byte(arg), codec.FormatUnknown, cfg.CodecOptions())
	if err != nil {
		return nil, fmt.Errorf("메시지 파싱 실패: %w", err)
	}
	return codec.Message(components), nil
}
