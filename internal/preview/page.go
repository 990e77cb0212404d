package preview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
)

// RendererGlobal is the window property the SDK installs.
const RendererGlobal = "qdxRenderer"

// Page builds HTML documents that load the renderer SDK and show a payload.
// Script URLs are tried in order; when none loads, the page prints the raw
// payload JSON instead.
type Page struct {
	sdkURLs []string
}

// NewPage returns a Page loading the SDK from sdkURLs.
func NewPage(sdkURLs []string) *Page {
	return &Page{sdkURLs: append([]string(nil), sdkURLs...)}
}

// SDKURLs returns the script URLs in load order.
func (p *Page) SDKURLs() []string {
	return append([]string(nil), p.sdkURLs...)
}

type popupData struct {
	Title     string
	MessageID string
	Payload   template.JS
	SDKURLs   template.JS
	Global    string
}

// Popup renders a standalone document showing one payload.
func (p *Page) Popup(messageID string, pl payload.Payload) (string, error) {
	data, err := p.popupData(messageID, pl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := popupTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render popup page: %w", err)
	}
	return buf.String(), nil
}

type surfaceData struct {
	SDKURLs    template.JS
	SocketPath template.JS
	Global     string
}

// Surface renders the live preview document. It connects to socketPath and
// renders every show_preview message it receives.
func (p *Page) Surface(socketPath string) (string, error) {
	urls, err := json.Marshal(p.sdkURLs)
	if err != nil {
		return "", err
	}
	path, err := json.Marshal(socketPath)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	err = surfaceTemplate.Execute(&buf, surfaceData{
		SDKURLs:    template.JS(urls),
		SocketPath: template.JS(path),
		Global:     RendererGlobal,
	})
	if err != nil {
		return "", fmt.Errorf("render preview page: %w", err)
	}
	return buf.String(), nil
}

func (p *Page) popupData(messageID string, pl payload.Payload) (popupData, error) {
	body, err := json.Marshal(pl)
	if err != nil {
		return popupData{}, fmt.Errorf("encode payload: %w", err)
	}
	urls, err := json.Marshal(p.sdkURLs)
	if err != nil {
		return popupData{}, err
	}
	return popupData{
		Title:     "qdx popup " + pl.Display,
		MessageID: messageID,
		Payload:   template.JS(body),
		SDKURLs:   template.JS(urls),
		Global:    RendererGlobal,
	}, nil
}

// loaderScript defines loadSDK(urls, done, failed) trying each URL in turn.
const loaderScript = `
function loadSDK(urls, done, failed) {
  var i = 0;
  function next() {
    if (window[GLOBAL] && typeof window[GLOBAL].showMsg === "function") { done(window[GLOBAL]); return; }
    if (i >= urls.length) { failed(); return; }
    var s = document.createElement("script");
    s.src = urls[i++];
    s.async = true;
    s.onload = function () { next(); };
    s.onerror = function () { next(); };
    document.head.appendChild(s);
  }
  next();
}
function showRaw(data) {
  var pre = document.getElementById("qdx-raw");
  pre.textContent = JSON.stringify(data, null, 2);
  pre.hidden = false;
}
`

var popupTemplate = template.Must(template.New("popup").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<div id="qdx-root"></div>
<pre id="qdx-raw" hidden></pre>
<script>
var GLOBAL = "{{.Global}}";
` + loaderScript + `
(function () {
  var data = {{.Payload}};
  var id = "{{.MessageID}}";
  loadSDK({{.SDKURLs}}, function (sdk) {
    try { sdk.showMsg(id, data); } catch (e) { showRaw(data); }
  }, function () { showRaw(data); });
})();
</script>
</body>
</html>
`))

var surfaceTemplate = template.Must(template.New("surface").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>qdx preview</title>
</head>
<body>
<div id="qdx-root"></div>
<label><input type="checkbox" id="qdx-today"> 오늘 하루 보지 않기</label>
<pre id="qdx-raw" hidden></pre>
<script>
var GLOBAL = "{{.Global}}";
` + loaderScript + `
(function () {
  var sdk = null;
  var pending = null;
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + {{.SocketPath}});
  function show(data) {
    if (!sdk) { pending = data; showRaw(data); return; }
    document.getElementById("qdx-raw").hidden = true;
    try { sdk.showMsg(String(Date.now()), data); } catch (e) { showRaw(data); }
  }
  loadSDK({{.SDKURLs}}, function (s) { sdk = s; if (pending) { show(pending); } }, function () {});
  ws.onopen = function () { ws.send(JSON.stringify({type: "iframe_ready"})); };
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "show_preview") { show(msg.data); }
  };
  document.getElementById("qdx-today").addEventListener("change", function (ev) {
    ws.send(JSON.stringify({type: "today_option_changed", checked: ev.target.checked}));
  });
})();
</script>
</body>
</html>
`))
