package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roboco-io/chatcomp/internal/codec"
	"github.com/roboco-io/chatcomp/internal/component"
)

var (
	inspectOutput string
	inspectFrom   string
	inspectFormat string
	inspectColors bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file|->",
	Short: "메시지 컴포넌트 트리 표시",
	Long: `메시지를 파싱하여 컴포넌트 트리와 각 노드의 실제 적용 스타일을 표시합니다.

스타일은 부모로부터 상속된 값까지 계산된 결과이며, 노드에 직접 지정된
필드는 set 항목으로 따로 표시됩니다.

예시:
  chatcomp inspect message.json
  chatcomp inspect motd.txt --color-codes --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	inspectCmd.Flags().StringVar(&inspectFrom, "from", "auto", "입력 형식 (auto, json, legacy, plain)")
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "text", "출력 형식 (text, json)")
	inspectCmd.Flags().BoolVar(&inspectColors, "color-codes", false, "레거시 입력의 § 코드 해석")

	rootCmd.AddCommand(inspectCmd)
}

// inspectNode is one component with its effective style.
type inspectNode struct {
	Path          string   `json:"path"`
	Text          string   `json:"text"`
	Color         string   `json:"color,omitempty"`
	Bold          bool     `json:"bold"`
	Italic        bool     `json:"italic"`
	Underlined    bool     `json:"underlined"`
	Strikethrough bool     `json:"strikethrough"`
	Obfuscated    bool     `json:"obfuscated"`
	Set           []string `json:"set,omitempty"`
	Click         string   `json:"click,omitempty"`
	Hover         string   `json:"hover,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	from, err := codec.ParseFormat(inspectFrom)
	if err != nil {
		return err
	}
	opts := cfg.CodecOptions()
	if cmd.Flags().Changed("color-codes") {
		opts.ColorCodes = inspectColors
	}

	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	components, err := codec.Decode(data, from, opts)
	if err != nil {
		return fmt.Errorf("메시지 파싱 실패: %w", err)
	}

	output, err := formatInspect(collectNodes(components), inspectFormat)
	if err != nil {
		return fmt.Errorf("출력 포맷팅 실패: %w", err)
	}
	return writeOutput(cmd, inspectOutput, output)
}

func collectNodes(components []*component.Component) []inspectNode {
	var nodes []inspectNode
	var walk func(c *component.Component, path string)
	walk = func(c *component.Component, path string) {
		r := component.Resolve(c)
		n := inspectNode{
			Path:          path,
			Text:          c.Text,
			Color:         string(r.Color),
			Bold:          r.Bold,
			Italic:        r.Italic,
			Underlined:    r.Underlined,
			Strikethrough: r.Strikethrough,
			Obfuscated:    r.Obfuscated,
		}
		if c.Style.Color != "" {
			n.Set = append(n.Set, "color")
		}
		for _, f := range component.Fields {
			if c.Style.Field(f).IsSet() {
				n.Set = append(n.Set, f.String())
			}
		}
		if c.Style.Click != nil {
			n.Click = c.Style.Click.Action.String() + ":" + c.Style.Click.Value
		}
		if c.Style.Hover != nil {
			n.Hover = c.Style.Hover.Action.String() + ":" + component.PlainText(c.Style.Hover.Value...)
		}
		nodes = append(nodes, n)

		for i, e := range c.Extra {
			walk(e, path+"."+strconv.Itoa(i))
		}
	}
	for i, c := range components {
		walk(c, strconv.Itoa(i))
	}
	return nodes
}

func formatInspect(nodes []inspectNode, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(nodes, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text":
		return formatNodesAsText(nodes), nil

	default:
		return "", fmt.Errorf("지원하지 않는 출력 형식: %s", format)
	}
}

func formatNodesAsText(nodes []inspectNode) string {
	var sb strings.Builder
	for _, n := range nodes {
		depth := strings.Count(n.Path, ".")
		fmt.Fprintf(&sb, "%s%s %q", strings.Repeat("  ", depth), n.Path, n.Text)

		var attrs []string
		if n.Color != "" {
			attrs = append(attrs, "color="+n.Color)
		}
		for _, flag := range []struct {
			on   bool
			name string
		}{
			{n.Bold, "bold"},
			{n.Italic, "italic"},
			{n.Underlined, "underlined"},
			{n.Strikethrough, "strikethrough"},
			{n.Obfuscated, "obfuscated"},
		} {
			if flag.on {
				attrs = append(attrs, flag.name)
			}
		}
		if len(n.Set) > 0 {
			attrs = append(attrs, "set="+strings.Join(n.Set, ","))
		}
		if n.Click != "" {
			attrs = append(attrs, "click="+n.Click)
		}
		if n.Hover != "" {
			attrs = append(attrs, "hover="+n.Hover)
		}
		if len(attrs) > 0 {
			sb.WriteString(" " + strings.Join(attrs, " "))
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
