package httpserver

// ── Base layout ───────────────────────────────────────────────────────────────

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
{{if .Refresh}}<meta http-equiv="refresh" content="1">{{end}}
<title>MarineIQ · {{.Profile.Name}}</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'JetBrains Mono',monospace,sans-serif;background:#0d1117;color:#c9d1d9;font-size:13px;line-height:1.5}
nav{background:#161b22;border-bottom:1px solid #30363d;padding:8px 16px;display:flex;gap:16px;align-items:center;flex-wrap:wrap}
nav .brand{color:#f0f6fc;font-weight:700;font-size:15px;margin-right:8px}
nav .roles{display:flex;gap:4px;margin-left:auto}
nav .roles button{font-size:11px;padding:2px 8px;border:1px solid #30363d;border-radius:4px;color:#8b949e;background:none;cursor:pointer;font-family:inherit}
nav .roles button.active{background:#1f6feb;border-color:#1f6feb;color:#fff}
main{padding:16px;max-width:1400px;margin:0 auto}
h1{font-size:16px;font-weight:700;color:#f0f6fc;margin-bottom:4px;text-align:center}
h2{font-size:13px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.06em;margin:16px 0 8px}
.lead{color:#8b949e;text-align:center;max-width:760px;margin:0 auto 12px}
.grid{display:grid;grid-template-columns:2fr 1fr;gap:16px}
.widgets{display:grid;grid-template-columns:repeat(auto-fill,minmax(420px,1fr));gap:16px}
.cards{display:flex;gap:12px;flex-wrap:wrap}
.card{background:#0d1117;border:1px solid #30363d;border-radius:6px;padding:12px 16px;min-width:120px}
.card .val{font-size:22px;font-weight:700}
.card .lbl{font-size:11px;color:#8b949e;margin-top:2px}
table{width:100%;border-collapse:collapse;font-size:12px}
th{text-align:left;padding:6px 10px;border-bottom:1px solid #30363d;color:#8b949e;font-weight:600;font-size:11px;text-transform:uppercase;letter-spacing:.05em}
td{padding:5px 10px;border-bottom:1px solid #21262d;vertical-align:top}
.badge{display:inline-block;padding:1px 6px;border-radius:10px;font-size:10px;font-weight:600;color:#0d1117;text-transform:uppercase}
.tag{display:inline-block;padding:1px 6px;border-radius:4px;font-size:11px;background:#21262d;color:#8b949e;border:1px solid #30363d}
.dim{color:#8b949e}
.ok{color:#56d364}
.warn{color:#f59e0b}
.err{color:#f87171}
.banner{padding:8px 12px;border:1px solid #f87171;border-radius:6px;color:#f87171;margin-bottom:12px;background:#f8717111}
.section{background:#161b22;border:1px solid #30363d;border-radius:6px;margin-bottom:16px;overflow:hidden}
.section-hdr{padding:8px 12px;border-bottom:1px solid #30363d;font-size:11px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.05em;background:#0d1117;display:flex;justify-content:space-between}
.section-body{padding:12px}
.ocean{position:relative;height:360px;background:linear-gradient(180deg,#0b2540,#0d1117);border-radius:6px}
.ocean button{position:absolute;border:1px solid #30363d;border-radius:6px;background:#1f6feb22;color:#c9d1d9;font-family:inherit;font-size:11px;cursor:pointer}
.ocean button.selected{border:2px solid #f0f6fc;background:#1f6feb55}
.ocean .dot{display:inline-block;width:8px;height:8px;border-radius:50%;margin-right:4px}
.alert{border-left:3px solid #30363d;padding:6px 10px;margin-bottom:8px;background:#0d1117;border-radius:0 4px 4px 0}
.alert .title{color:#f0f6fc;font-weight:600}
form.inline{display:inline}
select,input[type=text],textarea{background:#0d1117;border:1px solid #30363d;color:#c9d1d9;border-radius:4px;padding:3px 6px;font-size:12px;font-family:inherit}
textarea{width:100%;min-height:60px}
button.primary{background:#1f6feb;border:none;color:#fff;padding:4px 12px;border-radius:4px;cursor:pointer;font-size:12px;font-family:inherit}
button.primary:disabled{background:#30363d;color:#8b949e;cursor:not-allowed}
button.ghost{background:none;border:1px solid #30363d;color:#8b949e;padding:4px 12px;border-radius:4px;cursor:pointer;font-size:12px;font-family:inherit}
.result{margin-top:12px;padding:12px;border:1px solid #1f6feb;border-radius:6px;background:#1f6feb11}
.result .coef{font-size:28px;font-weight:700;color:#f0f6fc}
img.chart{width:100%;height:auto;background:#fff;border-radius:4px}
footer{margin-top:24px;padding:16px;text-align:center;border:1px solid #30363d;border-radius:6px;background:#161b22}
footer h3{color:#f0f6fc;font-size:14px;margin-bottom:6px}
@media (max-width:1000px){.grid{grid-template-columns:1fr}}
</style>
</head>
<body>
<nav>
  <span class="brand">🌊 MarineIQ</span>
  <span class="dim">{{.Profile.Description}}</span>
  <form class="roles" method="post" action="/role">
    {{range .Profiles}}<button type="submit" name="role" value="{{.Role}}" title="{{.Description}}"{{if eq .Role $.Role}} class="active"{{end}}>{{.Name}}</button>{{end}}
  </form>
</nav>
<main>
{{if .Error}}<div class="banner">{{.Error}}</div>{{end}}
{{template "content" .}}
</main>
</body>
</html>{{end}}
`

// ── Dashboard ─────────────────────────────────────────────────────────────────

const tmplDashboard = `
{{define "content"}}
<section class="section">
  <div class="section-body">
    <h1>Global Ocean Intelligence Platform</h1>
    <p class="lead">Click on any ocean region below to explore real-time data on temperature, chlorophyll levels, salinity, and fishing activity. Unified data from CMLRE, OBIS, Copernicus, and global research networks.</p>
    <form method="post" action="/map/select">
      <div class="ocean">
        {{range .Regions}}<button type="submit" name="region" value="{{.Name}}"{{if .Selected}} class="selected"{{end}} style="left:{{.Bounds.X}}%;top:{{.Bounds.Y}}%;width:{{.Bounds.Width}}%;height:{{.Bounds.Height}}%"><span class="dot" style="background:{{tierColor .Tier}}"></span>{{.Name}}</button>{{end}}
      </div>
    </form>
    {{with .Selected}}
    <h2>{{.Name}}</h2>
    <div class="cards">
      <div class="card"><div class="val">{{printf "%.1f" .Temperature}}°C</div><div class="lbl">Temperature</div></div>
      <div class="card"><div class="val">{{printf "%.1f" .Chlorophyll}} mg/m³</div><div class="lbl">Chlorophyll</div></div>
      <div class="card"><div class="val">{{printf "%.1f" .Salinity}} PSU</div><div class="lbl">Salinity</div></div>
      <div class="card"><div class="val" style="color:{{tierColor .Tier}}">{{.FishActivity}}%</div><div class="lbl">Fish activity · {{.Tier}}</div></div>
    </div>
    <form method="post" action="/map/select" style="margin-top:8px"><button class="ghost" type="submit" name="region" value="">Clear selection</button></form>
    {{end}}
  </div>
</section>

<div class="grid">
  <div>
    <div class="widgets">
      {{range .Widgets}}
      <section class="section">
        <div class="section-hdr"><span>{{.Title}}</span></div>
        <div class="section-body">
        {{if .Kind.Chart}}
          <img class="chart" src="/api/v1/widgets/{{.ID}}/chart.svg" alt="{{.Title}}">
        {{else if .Stats}}
          <div class="cards">{{range .Stats}}<div class="card"><div class="val" style="color:{{toneColor .Tone}}">{{.Value}}</div><div class="lbl">{{.Label}}</div></div>{{end}}</div>
        {{else}}
          <table>
            <tr><th>Source</th><th>Records</th><th>Count</th></tr>
            {{range .Summary}}<tr><td>{{.Source}}</td><td class="dim">{{.Label}}</td><td>{{.Count}}</td></tr>{{end}}
          </table>
        {{end}}
        </div>
      </section>
      {{end}}
    </div>

    {{with .Correlation}}
    <section class="section" id="correlation">
      <div class="section-hdr"><span>Cross-Disciplinary Correlation Analysis</span><span>{{.Phase}}</span></div>
      <div class="section-body">
        <form method="post" action="/correlation/select">
          <label class="dim">Primary dataset</label>
          <select name="primary"{{if .Analyzing}} disabled{{end}}>
            <option value="">Select primary dataset</option>
            {{range .Datasets}}<option value="{{.ID}}"{{if eq .ID $.Correlation.Selection.Primary}} selected{{end}}>{{.Name}}</option>{{end}}
          </select>
          <label class="dim">Correlate with</label>
          <select name="correlating"{{if .Analyzing}} disabled{{end}}>
            <option value="">Select dataset to correlate</option>
            {{range .CorrelatingOptions}}<option value="{{.ID}}"{{if eq .ID $.Correlation.Selection.Correlating}} selected{{end}}>{{.Name}} · {{.Category}}</option>{{end}}
          </select>
          <button class="ghost" type="submit"{{if .Analyzing}} disabled{{end}}>Apply</button>
        </form>
        <div style="margin-top:8px">
          <form class="inline" method="post" action="/correlation/analyze">
            <button class="primary" type="submit"{{if not .CanSubmit}} disabled{{end}}>{{if .Analyzing}}Analyzing Correlation…{{else}}Run Correlation Analysis{{end}}</button>
          </form>
          <form class="inline" method="post" action="/correlation/reset"><button class="ghost" type="submit">Reset</button></form>
        </div>
        {{with .Failure}}<div class="banner" style="margin-top:8px">{{.Message}}</div>{{end}}
        {{with .Result}}
        <div class="result">
          <div class="coef">r = {{coef .Coefficient}} <span class="tag">{{pvalue .Significance}}</span></div>
          <div class="dim">{{.Primary.Name}} × {{.Correlating.Name}}</div>
          <h2>Insight</h2>
          <p>{{.Insight}}</p>
          <h2>Recommendation</h2>
          <p>{{.Recommendation}}</p>
        </div>
        {{end}}
      </div>
    </section>
    {{end}}
  </div>

  <div>
    <section class="section">
      <div class="section-hdr"><span>Alerts &amp; Notifications</span><span>{{.Alerts.Active}} active</span></div>
      <div class="section-body">
        {{range .Alerts.Alerts}}
        <div class="alert" style="border-left-color:{{severityColor .Severity}}">
          <span class="badge" style="background:{{severityColor .Severity}}">{{.Severity}}</span> <span class="tag">{{.Category}}</span>
          <div class="title">{{.Title}}</div>
          <div>{{.Description}}</div>
          <div class="dim">{{.Location}} · {{.Timestamp}}</div>
        </div>
        {{else}}<p class="dim">No active alerts for this role.</p>{{end}}
      </div>
    </section>

    {{if .AssistantEnabled}}
    <section class="section">
      <div class="section-hdr"><span>AI Ocean Assistant</span></div>
      <div class="section-body">
        <form method="post" action="/assistant">
          <textarea name="question" placeholder="Ask questions about ocean data, correlations, and insights">{{.Question}}</textarea>
          <button class="primary" type="submit">Ask</button>
        </form>
        {{with .Answer}}
        <div class="result">
          <p>{{.Answer}}</p>
          {{if .RelatedDatasets}}<div class="dim">Related: {{range .RelatedDatasets}}<span class="tag">{{.}}</span> {{end}}</div>{{end}}
        </div>
        {{end}}
      </div>
    </section>
    {{end}}
  </div>
</div>

<footer>
  <h3>{{.Profile.Headline}}</h3>
  <p class="dim">{{.Profile.Blurb}}</p>
</footer>
{{end}}
`
