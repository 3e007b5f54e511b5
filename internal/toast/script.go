package toast

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
	"text/template"
)

// 与 go-toast 相同的做法：生成 PowerShell 脚本调用 WinRT 通知接口
const scriptHeader = `[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.UI.Notifications.ToastNotification, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$history = [Windows.UI.Notifications.ToastNotificationManager]::History
`

var showTemplate = template.Must(template.New("show").Funcs(template.FuncMap{
	"xml": xmlEscape,
	"ps":  psQuote,
}).Parse(scriptHeader + `$xml = New-Object Windows.Data.Xml.Dom.XmlDocument
$xml.LoadXml(@'
<toast activationType="protocol" launch="{{xml .N.Arguments}}">
<visual><binding template="ToastGeneric">
{{- if .N.Icon}}<image placement="appLogoOverride" src="{{xml .N.Icon}}" />{{end}}
<text>{{xml .N.Title}}</text>
<text>{{xml .N.Message}}</text>
</binding></visual>
{{- if .N.Actions}}<actions>
{{- range .N.Actions}}<action activationType="protocol" content="{{xml .Label}}" arguments="{{xml .Arguments}}" />{{end -}}
</actions>{{end}}
</toast>
'@)
$toast = New-Object Windows.UI.Notifications.ToastNotification $xml
$toast.Tag = {{ps .N.Tag}}
$toast.Group = {{ps .N.Group}}
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier({{if .AppID}}{{ps .AppID}}{{end}}).Show($toast)
`))

// RenderShow 生成投递通知的脚本，appID 为空时使用包默认的通知器
func RenderShow(appID string, n Notification) (string, error) {
	var buf bytes.Buffer
	err := showTemplate.Execute(&buf, struct {
		AppID string
		N     Notification
	}{appID, n})
	if err != nil {
		return "", fmt.Errorf("render toast script: %w", err)
	}
	return buf.String(), nil
}

// RenderClear 清空历史
func RenderClear(identity string) string {
	if identity == "" {
		return scriptHeader + "$history.Clear()\n"
	}
	return scriptHeader + fmt.Sprintf("$history.Clear(%s)\n", psQuote(identity))
}

// RenderRemove 按 Tag（和 Group）删除
func RenderRemove(identity, tag, group string) string {
	switch {
	case identity != "":
		return scriptHeader + fmt.Sprintf("$history.Remove(%s, %s, %s)\n", psQuote(tag), psQuote(group), psQuote(identity))
	case group != "":
		return scriptHeader + fmt.Sprintf("$history.Remove(%s, %s)\n", psQuote(tag), psQuote(group))
	default:
		return scriptHeader + fmt.Sprintf("$history.Remove(%s)\n", psQuote(tag))
	}
}

// RenderRemoveGroup 删除整个分组
func RenderRemoveGroup(identity, group string) string {
	if identity == "" {
		return scriptHeader + fmt.Sprintf("$history.RemoveGroup(%s)\n", psQuote(group))
	}
	return scriptHeader + fmt.Sprintf("$history.RemoveGroup(%s, %s)\n", psQuote(group), psQuote(identity))
}

// RenderList 以 JSON 数组输出历史记录
func RenderList(identity string) string {
	get := "$history.GetHistory()"
	if identity != "" {
		get = fmt.Sprintf("$history.GetHistory(%s)", psQuote(identity))
	}
	return scriptHeader + `$items = @()
foreach ($t in ` + get + `) {
    $texts = $t.Content.GetElementsByTagName('text')
    $items += [pscustomobject]@{
        tag       = $t.Tag
        group     = $t.Group
        title     = if ($texts.Length -gt 0) { $texts.Item(0).InnerText } else { '' }
        message   = if ($texts.Length -gt 1) { $texts.Item(1).InnerText } else { '' }
        arguments = $t.Content.DocumentElement.GetAttribute('launch')
    }
}
ConvertTo-Json -Compress -InputObject @($items)
`
}

type scriptRecord struct {
	Tag       string `json:"tag"`
	Group     string `json:"group"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Arguments string `json:"arguments"`
}

// ParseList 解析 RenderList 脚本的输出
func ParseList(out []byte) ([]Record, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return nil, nil
	}

	var raw []scriptRecord
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for _, r := range raw {
		records = append(records, Record{
			Tag:       r.Tag,
			Group:     r.Group,
			Title:     r.Title,
			Message:   r.Message,
			Arguments: r.Arguments,
		})
	}
	return records, nil
}

// psQuote 单引号字符串，内部的单引号写两次
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// xmlEscape 同时适用于文本与属性值，换行也会被转义
func xmlEscape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
