package embed

import (
	"bytes"
	"html/template"
	"io"
	"sync"
	"time"

	"github.com/rarebeats-player/internal/constants"
)

// Options 嵌入渲染配置
type Options struct {
	APIURL         string        // 前端请求的接口根地址
	AssetURLPrefix string        // 静态资源 URL 前缀
	DefaultHeight  string        // 占位高度默认值
	MountRetry     time.Duration // 挂载目标缺失时的重试延迟
}

// ClientConfig 页面全局 window.rarebeatsConfig
type ClientConfig struct {
	APIURL string `json:"apiUrl"`
	Nonce  string `json:"nonce"`
}

// Renderer 持有定位好的产物，按页面创建 Page
type Renderer struct {
	opts   Options
	assets Assets
}

// NewRenderer 创建渲染器
func NewRenderer(opts Options, assets Assets) *Renderer {
	if opts.MountRetry <= 0 {
		opts.MountRetry = constants.DefaultMountRetryMillis * time.Millisecond
	}
	opts.DefaultHeight = SanitizeHeight(opts.DefaultHeight, constants.DefaultEmbedHeight)
	return &Renderer{opts: opts, assets: assets}
}

// Assets 返回当前产物
func (r *Renderer) Assets() Assets {
	return r.assets
}

// NewPage 为一次页面加载创建渲染上下文
func (r *Renderer) NewPage(nonce string) *Page {
	return &Page{
		renderer: r,
		config:   ClientConfig{APIURL: r.opts.APIURL, Nonce: nonce},
	}
}

// Page 单次页面加载；资源注入由 sync.Once 保证至多一次
type Page struct {
	renderer  *Renderer
	config    ClientConfig
	once      sync.Once
	injectErr error
}

// RenderMarker 输出挂载占位，并在首次调用时注入资源
func (p *Page) RenderMarker(w io.Writer, height string) error {
	var buf bytes.Buffer
	data := markerData{Height: SanitizeHeight(height, p.renderer.opts.DefaultHeight)}
	if err := markerTemplate.Execute(&buf, data); err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	return p.InjectAssets(w)
}

// InjectAssets 注入配置脚本、样式、脚本与挂载引导；同一页面重复调用无副作用
func (p *Page) InjectAssets(w io.Writer) error {
	p.once.Do(func() {
		var buf bytes.Buffer
		r := p.renderer
		data := assetData{
			Config:     p.config,
			BackendURL: p.config.APIURL,
			CSSURL:     r.assets.URL(r.opts.AssetURLPrefix, r.assets.CSS),
			JSURL:      r.assets.URL(r.opts.AssetURLPrefix, r.assets.JS),
			RetryMS:    int(r.opts.MountRetry / time.Millisecond),
		}
		if err := assetTemplate.Execute(&buf, data); err != nil {
			p.injectErr = err
			return
		}
		_, p.injectErr = w.Write(buf.Bytes())
	})
	return p.injectErr
}

// RenderDocument 输出独立宿主页面
func (p *Page) RenderDocument(w io.Writer, height string) error {
	var body bytes.Buffer
	if err := p.RenderMarker(&body, height); err != nil {
		return err
	}
	return documentTemplate.Execute(w, documentData{Body: template.HTML(body.String())})
}

type markerData struct {
	Height string
}

type assetData struct {
	Config     ClientConfig
	BackendURL string
	CSSURL     string
	JSURL      string
	RetryMS    int
}

type documentData struct {
	Body template.HTML
}

var markerTemplate = template.Must(template.New("marker").Parse(
	`<div id="rarebeats-player-root" class="rarebeats-container" style="height: {{.Height}}; width: 100%; position: relative; background: #0a0a0f;">` +
		`<div class="rarebeats-loading">Loading RareBeats Player...</div>` +
		`</div>
`))

var assetTemplate = template.Must(template.New("assets").Parse(`{{if .CSSURL}}<link rel="stylesheet" href="{{.CSSURL}}">
{{end}}<script>
window.rarebeatsConfig = {{.Config}};
window.REACT_APP_BACKEND_URL = {{.BackendURL}};
</script>
{{if .JSURL}}<script src="{{.JSURL}}"></script>
{{end}}<script>
(function () {
  var delay = {{.RetryMS}};
  function target() {
    return document.getElementById("rarebeats-player-root") || document.getElementById("root");
  }
  function mount() {
    var el = target();
    if (!el || !window.RareBeatsPlayer || typeof window.RareBeatsPlayer.mount !== "function") {
      return false;
    }
    window.RareBeatsPlayer.mount(el);
    return true;
  }
  if (!mount()) {
    setTimeout(mount, delay);
  }
})();
</script>
`))

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>RareBeats</title>
</head>
<body style="margin: 0; background: #0a0a0f;">
{{.Body}}</body>
</html>
`))
