package cli

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roboco-io/chatcomp/internal/delivery"
)

type providerInfo struct {
	Name        string
	Description string
}

var providers = []providerInfo{
	{
		Name:        delivery.NameConsole,
		Description: "터미널 출력 (ANSI 색상, OSC 8 링크)",
	},
	{
		Name:        delivery.NameJSON,
		Description: "줄 단위 JSON 봉투",
	},
	{
		Name:        delivery.NameLegacy,
		Description: "§ 코드 텍스트 (항상 사용 가능, 대체 전송용)",
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "사용 가능한 전송 프로바이더 목록",
	Long: `메시지 전송에 사용할 수 있는 프로바이더와 현재 환경에서의 상태를 표시합니다.

우선순위는 설정 파일의 delivery.providers 또는 CHATCOMP_PROVIDERS로 지정합니다.
console 프로바이더는 출력이 터미널일 때만 사용할 수 있습니다.

사용 예시:
  chatcomp send 'hello' --provider console,legacy
  chatcomp config set delivery.providers json,legacy`,
	RunE: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	registry := delivery.NewDefaultRegistry(cmd.OutOrStdout())

	rank := make(map[string]int, len(cfg.Delivery.Providers))
	for i, name := range cfg.Delivery.Providers {
		rank[name] = i + 1
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "프로바이더\t우선순위\t상태\t설명")
	fmt.Fprintln(w, "---------\t-------\t----\t----")

	for _, p := range providers {
		order := "-"
		if n, ok := rank[p.Name]; ok {
			order = strconv.Itoa(n)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, order, checkProviderStatus(registry, p), p.Description)
	}
	return nil
}

func checkProviderStatus(r *delivery.Registry, p providerInfo) string {
	switch err := r.Status(p.Name); {
	case err == nil:
		return "✓ 사용가능"
	case errors.Is(err, delivery.ErrNotRegistered):
		return "✗ 미등록"
	case errors.Is(err, delivery.ErrUnavailable):
		return "✗ 사용불가"
	default:
		return "✗ 오류"
	}
}
