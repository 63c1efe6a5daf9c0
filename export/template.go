package export

import "html/template"

var docTemplate = template.Must(template.New("document").Parse(documentHTML))

const documentHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <style>
    :root { color-scheme: light dark; }
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Arial, sans-serif; margin: 24px; }
    h1 { margin-bottom: 4px; }
    .case { padding: 14px 16px; border: 1px solid #e5e7eb; border-radius: 12px; margin: 12px 0; background: #ffffff; }
    .case h3 { margin: 0 0 8px; font-size: 16px; }
    .meta { color: #6b7280; font-size: 0.9em; margin-top: 6px; }
    pre { background: #f6f8fa; padding: 12px; border-radius: 8px; white-space: pre-wrap; }
    ol { margin: 6px 0 0 20px; }
    input[type='checkbox'] { width: 16px; height: 16px; vertical-align: text-top; }
    .case-actions { display: flex; gap: 12px; flex-wrap: wrap; margin-top: 10px; align-items: flex-start; }
    .block-head { display: flex; align-items: center; gap: 8px; flex-wrap: wrap; }
    .copy-btn { padding: 6px 10px; border-radius: 8px; border: 1px solid #e5e7eb; background: #f8fafc; cursor: pointer; font-size: 0.85em; }
    .copy-status { font-size: 0.8em; color: #16a34a; opacity: 0; transition: opacity 0.2s ease; }
    .copy-status.show { opacity: 1; }
    .bug-link-input, .case-notes, .case-actual, #version-raw { width: 100%; padding: 8px; border-radius: 8px; border: 1px solid #e5e7eb; }
    .case-notes, .case-actual { min-height: 64px; }
    .case-status { min-width: 160px; padding: 6px; border-radius: 8px; border: 1px solid #e5e7eb; }
    .notes-block, .actual-block { width: 100%; }
    .case-proof { display: flex; gap: 8px; flex-wrap: wrap; margin-top: 8px; }
    .case-proof img { max-width: 220px; border-radius: 8px; border: 1px solid #e5e7eb; }
    .toolbar { display: flex; gap: 12px; flex-wrap: wrap; margin: 12px 0 20px; }
    .toolbar button { padding: 8px 12px; border-radius: 8px; border: 1px solid #e5e7eb; background: #f8fafc; cursor: pointer; }
    .meta-block { padding: 12px 16px; border: 1px solid #e5e7eb; border-radius: 12px; background: #ffffff; }
    .meta-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 12px; }
    .meta-grid label { display: block; font-size: 0.85em; color: #6b7280; margin-bottom: 4px; }
    .meta-grid input, .meta-grid select { width: 100%; padding: 8px; border-radius: 8px; border: 1px solid #e5e7eb; }
    .channel-list { display: grid; gap: 6px; margin-top: 6px; }
    .env-row { display: flex; gap: 8px; align-items: center; }
    .env-clear { padding: 6px 8px; border-radius: 8px; border: 1px solid #e5e7eb; background: #f8fafc; cursor: pointer; font-size: 0.8em; }
    .env-copy { margin-top: 10px; display: flex; gap: 8px; align-items: center; }
    .activity-log ul { padding-left: 18px; }
    .status-chart { margin-top: 18px; padding: 14px 16px; border: 1px solid #e5e7eb; border-radius: 12px; background: #ffffff; }
    .status-bars { display: grid; gap: 10px; }
    .status-row { display: grid; grid-template-columns: 100px 1fr 40px; align-items: center; gap: 10px; }
    .status-label { font-size: 0.9em; color: #6b7280; }
    .status-bar { height: 10px; background: #e5e7eb; border-radius: 999px; overflow: hidden; }
    .status-bar span { display: block; height: 100%; border-radius: 999px; }
    .status-bar .pass { background: #16a34a; }
    .status-bar .fail { background: #dc2626; }
    .status-bar .blocked { background: #f59e0b; }
    .status-bar .skipped { background: #6b7280; }
    .status-bar .not_set { background: #9ca3af; }
  </style>
</head>
<body data-run-id="{{.RunID}}" data-session-key="{{.SessionKey}}" data-issue-repo="{{.IssueRepo}}" data-issue-title="{{.IssueTitle}}">
  <h1>{{.Title}}</h1>
  <div class="meta"><strong>Run ID:</strong> {{.RunID}}</div>
  <div class="meta-block">
    <h2>Environment</h2>
    <div class="meta-grid">
{{- if and .Templates (not .Final)}}
      <div>
        <label>Template</label>
        <select id="env-template" data-templates="{{.TemplatesJSON}}">
          <option value="">Select template</option>
{{- range .Templates}}
          <option value="{{.}}">{{.}}</option>
{{- end}}
        </select>
      </div>
{{- end}}
      <div>
        <label>QA Engineer</label>
        <select id="collector"{{if .Final}} disabled{{end}}>
          <option value="">{{.UserPlaceholder}}</option>
{{- range .Users}}
          <option value="{{.}}"{{if eq . $.Collector}} selected{{end}}>{{.}}</option>
{{- end}}
        </select>
      </div>
      <div>
        <label>Platform</label>
        <div class="env-row">
          <input id="env-platform" list="platform-options" type="text" value="{{.Env.Platform}}"{{if .Final}} readonly{{end}} />
{{- if not .Final}}
          <button class="env-clear" type="button" data-target="env-platform">Clear</button>
{{- end}}
        </div>
      </div>
      <div>
        <label>OS version</label>
        <div class="env-row">
          <input id="env-os" list="os-options" type="text" value="{{.Env.OSVersion}}"{{if .Final}} readonly{{end}} />
{{- if not .Final}}
          <button class="env-clear" type="button" data-target="env-os">Clear</button>
{{- end}}
        </div>
      </div>
      <div>
        <label>App version</label>
        <input id="env-version" type="text" value="{{.Env.AppVersion}}"{{if .Final}} readonly{{end}} />
      </div>
      <div>
        <label>Revision</label>
        <input id="env-revision" type="text" value="{{.Env.Revision}}"{{if .Final}} readonly{{end}} />
      </div>
    </div>
    <div>
      <label>Channel information</label>
      <div class="channel-list">
{{- range .Channels}}
        <label><input type="checkbox" class="env-channel" value="{{.Name}}"{{if .Checked}} checked{{end}}{{if $.Final}} disabled{{end}} /> {{.Name}}</label>
{{- end}}
      </div>
    </div>
{{- if not .Final}}
    <div>
      <label>Auto-fill from diagnostics</label>
      <div class="block-head">
        <button class="copy-btn" data-copy="version">Paste + Parse</button>
        <span class="copy-status"></span>
      </div>
      <textarea id="version-raw" placeholder="Paste version output here..."></textarea>
    </div>
{{- end}}
    <datalist id="platform-options">
{{- range .PlatformOptions}}
      <option value="{{.}}"></option>
{{- end}}
    </datalist>
    <datalist id="os-options">
{{- range .OSOptions}}
      <option value="{{.}}"></option>
{{- end}}
    </datalist>
    <div class="env-copy">
      <button class="copy-btn" data-copy="environment" data-copy-text="{{.EnvText}}">Copy environment</button>
      <span class="copy-status"></span>
    </div>
  </div>
{{- if .Description}}
  <h2>Description</h2>
  <pre>{{.Description}}</pre>
{{- end}}
{{- if not .Final}}
  <div class="toolbar">
    <button id="export-json">Export report JSON</button>
    <button id="export-log">Export activity log</button>
  </div>
{{- end}}
  <h2>Checklist</h2>
{{- range .Cases}}
  <div class="case" data-case-key="{{.Key}}" data-case-title="{{.Title}}">
    <h3><input type="checkbox" class="case-check"{{if .Checked}} checked{{end}}{{if $.Final}} disabled{{end}} /> {{.Header}}</h3>
{{- if .Steps}}
    <div class="block-head"><strong>Steps:</strong>
      <button class="copy-btn" data-copy="steps" data-copy-text="{{.Copy.Steps}}">Copy</button>
      <span class="copy-status"></span></div>
    <ol>
{{- range .Steps}}
      <li>{{.}}</li>
{{- end}}
    </ol>
{{- end}}
{{- if .Expected}}
    <div class="meta"><strong>Expected:</strong> {{.Expected}}</div>
{{- end}}
{{- if .Tags}}
    <div class="meta"><strong>Tags:</strong> {{.Tags}}</div>
{{- end}}
{{- if .Links}}
    <div class="meta"><strong>Links:</strong>
{{- range .Links}}
      <a href="{{.}}" target="_blank" rel="noreferrer">{{.}}</a>
{{- end}}
    </div>
{{- end}}
    <div class="case-actions">
      <label>Status</label>
      <select class="case-status"{{if $.Final}} disabled{{end}}>
{{- range .StatusOptions}}
        <option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{- end}}
      </select>
      <div class="block-head">
        <label>Bug link</label>
        <button class="copy-btn" data-copy="bug" data-copy-text="{{.Copy.Bug}}">Copy</button>
        <span class="copy-status"></span></div>
      <input class="bug-link-input" type="url" value="{{.BugLink}}"{{if $.Final}} readonly{{end}} />
      <div class="notes-block">
        <div class="block-head"><label>Notes</label>
          <button class="copy-btn" data-copy="notes" data-copy-text="{{.Copy.Notes}}">Copy</button>
          <span class="copy-status"></span></div>
        <textarea class="case-notes"{{if $.Final}} readonly{{end}}>{{.Notes}}</textarea>
      </div>
      <div class="actual-block">
        <div class="block-head"><label>Actual result</label>
          <button class="copy-btn" data-copy="actual" data-copy-text="{{.Copy.Actual}}">Copy</button>
          <span class="copy-status"></span></div>
        <textarea class="case-actual"{{if $.Final}} readonly{{end}}>{{.ActualResult}}</textarea>
        <div class="block-head">
          <label>Proof (screenshots)</label>
          <button class="copy-btn" data-copy="attachments" data-copy-text="{{.Copy.Attachments}}">Copy</button>
          <span class="copy-status"></span></div>
{{- if not $.Final}}
        <input class="case-file" type="file" accept="image/*" multiple />
{{- end}}
      </div>
      <div class="block-head">
        <label>Summary</label>
        <button class="copy-btn" data-copy="summary" data-copy-text="{{.Copy.Summary}}">Copy</button>
        <span class="copy-status"></span></div>
    </div>
    <div class="case-proof">
{{- range .Attachments}}
      <img src="{{.Payload}}" data-name="{{.Name}}" alt="{{.Name}}" />
{{- end}}
    </div>
  </div>
{{- end}}
  <div class="activity-log">
    <h2>Activity log</h2>
    <ul id="activity-list">
{{- range .Logs}}
      <li>{{.}}</li>
{{- end}}
    </ul>
  </div>
  <div class="status-chart">
    <h2>Status summary</h2>
    <div class="status-bars" id="status-bars">
{{- range .SummaryRows}}
      <div class="status-row">
        <div class="status-label">{{.Label}}</div>
        <div class="status-bar"><span class="{{.Class}}" style="width:{{printf "%.1f" .Percent}}%"></span></div>
        <div class="status-label">{{.Count}}</div>
      </div>
{{- end}}
    </div>
  </div>
  <details>
    <summary>QA report data (machine-readable)</summary>
    <pre id="qa-report-data">{{.ReportJSONText}}</pre>
    <script type="application/json" id="qa-report-json">{{.ReportJSON}}</script>
  </details>
  <script>{{.Script}}</script>
</body>
</html>
`

// finalScript is the only behavior a finalized document keeps: copying
// the precomputed payloads. Everything else is static.
const finalScript = `
document.querySelectorAll('.copy-btn').forEach(function (btn) {
  btn.addEventListener('click', function () {
    var text = btn.getAttribute('data-copy-text') || '';
    if (!text) return;
    var head = btn.closest('.block-head') || btn.parentElement;
    var status = head ? head.querySelector('.copy-status') : null;
    var done = function () {
      if (!status) return;
      status.textContent = 'Copied';
      status.classList.add('show');
      setTimeout(function () {
        status.textContent = '';
        status.classList.remove('show');
      }, 1500);
    };
    if (navigator.clipboard && navigator.clipboard.writeText) {
      navigator.clipboard.writeText(text).then(done).catch(done);
      return;
    }
    var area = document.createElement('textarea');
    area.value = text;
    document.body.appendChild(area);
    area.select();
    document.execCommand('copy');
    area.remove();
    done();
  });
});
`

// workingScript keeps a re-opened working export editable: edits
// persist to localStorage under the same session key, the log and
// status chart stay live, and copy buttons recompute from the current
// field values.
const workingScript = `
(function () {
  var runId = document.body.getAttribute('data-run-id') || '';
  var slugify = function (text) {
    return text.toLowerCase().replace(/[^a-z0-9]+/g, '-').replace(/(^-|-$)/g, '') || 'checklist';
  };
  var storageKey = document.body.getAttribute('data-session-key') ||
    ('checkrun:' + slugify(document.title) + ':' + runId);
  var state = {};
  try { state = JSON.parse(localStorage.getItem(storageKey) || '{}'); } catch (err) {}
  state.meta = state.meta || {};
  state.meta.environment = state.meta.environment || {};
  state.logs = state.logs || [];
  var saveState = function () {
    try { localStorage.setItem(storageKey, JSON.stringify(state)); } catch (err) {}
  };
  var activityList = document.getElementById('activity-list');
  var logEvent = function (action) {
    state.logs.push({ at: new Date().toISOString(), action: action });
    saveState();
    var li = document.createElement('li');
    li.textContent = '[' + state.logs[state.logs.length - 1].at + '] ' + action;
    activityList.appendChild(li);
  };
  var copyText = function (text, btn) {
    if (!text) return;
    var head = btn.closest('.block-head') || btn.parentElement;
    var status = head ? head.querySelector('.copy-status') : null;
    var done = function () {
      if (!status) return;
      status.textContent = 'Copied';
      status.classList.add('show');
      setTimeout(function () {
        status.textContent = '';
        status.classList.remove('show');
      }, 1500);
    };
    if (navigator.clipboard && navigator.clipboard.writeText) {
      navigator.clipboard.writeText(text).then(done).catch(done);
      return;
    }
    var area = document.createElement('textarea');
    area.value = text;
    document.body.appendChild(area);
    area.select();
    document.execCommand('copy');
    area.remove();
    done();
  };
  var renderStatusChart = function () {
    var summary = { pass: 0, fail: 0, blocked: 0, skipped: 0, not_set: 0 };
    document.querySelectorAll('.case .case-status').forEach(function (sel) {
      summary[sel.value] = (summary[sel.value] || 0) + 1;
    });
    var total = 0;
    Object.keys(summary).forEach(function (k) { total += summary[k]; });
    if (!total) total = 1;
    document.querySelectorAll('#status-bars .status-row').forEach(function (row) {
      var span = row.querySelector('.status-bar span');
      var count = summary[span.className] || 0;
      span.style.width = (count / total) * 100 + '%';
      row.lastElementChild.textContent = count;
    });
  };
  var bindMetaInput = function (id, key, label) {
    var input = document.getElementById(id);
    if (!input) return;
    if (state.meta.environment[key]) input.value = state.meta.environment[key];
    input.addEventListener('input', function () {
      state.meta.environment[key] = input.value;
      saveState();
    });
    input.addEventListener('change', function () {
      logEvent(label + ' set to ' + input.value);
    });
  };
  bindMetaInput('env-platform', 'platform', 'Platform');
  bindMetaInput('env-os', 'os_version', 'OS version');
  bindMetaInput('env-version', 'app_version', 'App version');
  bindMetaInput('env-revision', 'revision', 'Revision');
  var collector = document.getElementById('collector');
  if (collector) {
    if (state.meta.collector) collector.value = state.meta.collector;
    collector.addEventListener('change', function () {
      state.meta.collector = collector.value;
      saveState();
      logEvent('Collector set to ' + collector.value);
    });
  }
  var channelBoxes = document.querySelectorAll('.env-channel');
  if (state.meta.environment.channels) {
    channelBoxes.forEach(function (box) {
      box.checked = state.meta.environment.channels.indexOf(box.value) !== -1;
    });
  }
  var updateChannels = function () {
    var selected = [];
    channelBoxes.forEach(function (box) { if (box.checked) selected.push(box.value); });
    state.meta.environment.channels = selected;
    saveState();
    return selected;
  };
  channelBoxes.forEach(function (box) {
    box.addEventListener('change', function () {
      logEvent('Channel selection: ' + updateChannels().join(', '));
    });
  });
  document.querySelectorAll('.env-clear').forEach(function (btn) {
    btn.addEventListener('click', function () {
      var input = document.getElementById(btn.getAttribute('data-target'));
      if (!input) return;
      input.value = '';
      input.dispatchEvent(new Event('input'));
      input.focus();
    });
  });
  document.querySelectorAll('.case').forEach(function (card) {
    var key = card.getAttribute('data-case-key');
    var checkbox = card.querySelector('.case-check');
    var notes = card.querySelector('.case-notes');
    var actual = card.querySelector('.case-actual');
    var status = card.querySelector('.case-status');
    var bugInput = card.querySelector('.bug-link-input');
    var fileInput = card.querySelector('.case-file');
    var proof = card.querySelector('.case-proof');
    var saved = state[key] || {};
    if ('checked' in saved) checkbox.checked = !!saved.checked;
    if (saved.notes !== undefined) notes.value = saved.notes;
    if (saved.actual_result !== undefined) actual.value = saved.actual_result;
    if (saved.status) status.value = saved.status;
    if (saved.bug_link !== undefined) bugInput.value = saved.bug_link;
    (saved.attachments || []).forEach(function (att) {
      var img = document.createElement('img');
      img.src = att.payload;
      img.dataset.name = att.name || '';
      proof.appendChild(img);
    });
    var attachmentsText = function () {
      var parts = [];
      proof.querySelectorAll('img').forEach(function (img, i) {
        parts.push((img.dataset.name || ('screenshot-' + (i + 1))) + ': ' + img.src);
      });
      return parts.join('\n');
    };
    checkbox.addEventListener('change', function () {
      state[key] = state[key] || {};
      state[key].checked = checkbox.checked;
      saveState();
      logEvent('Case ' + key + ' checkbox set to ' + checkbox.checked);
    });
    status.addEventListener('change', function () {
      state[key] = state[key] || {};
      state[key].status = status.value;
      saveState();
      logEvent('Case ' + key + ' status set to ' + status.value);
      renderStatusChart();
    });
    bugInput.addEventListener('input', function () {
      state[key] = state[key] || {};
      state[key].bug_link = bugInput.value.trim();
      saveState();
    });
    bugInput.addEventListener('change', function () {
      if (bugInput.value) logEvent('Case ' + key + ' bug link set to ' + bugInput.value);
    });
    notes.addEventListener('input', function () {
      state[key] = state[key] || {};
      state[key].notes = notes.value;
      saveState();
    });
    notes.addEventListener('change', function () {
      logEvent('Case ' + key + ' notes updated');
    });
    actual.addEventListener('input', function () {
      state[key] = state[key] || {};
      state[key].actual_result = actual.value;
      saveState();
    });
    actual.addEventListener('change', function () {
      logEvent('Case ' + key + ' actual result updated');
    });
    if (fileInput) {
      fileInput.addEventListener('change', function () {
        Array.prototype.forEach.call(fileInput.files || [], function (file) {
          var reader = new FileReader();
          reader.onload = function () {
            var img = document.createElement('img');
            img.src = reader.result;
            img.dataset.name = file.name;
            proof.appendChild(img);
            state[key] = state[key] || {};
            state[key].attachments = state[key].attachments || [];
            state[key].attachments.push({ name: file.name, payload: reader.result });
            saveState();
            logEvent('Case ' + key + ' evidence added: ' + file.name);
          };
          reader.readAsDataURL(file);
        });
        fileInput.value = '';
      });
    }
    card.querySelectorAll('.copy-btn').forEach(function (btn) {
      btn.addEventListener('click', function () {
        var kind = btn.getAttribute('data-copy');
        var text = btn.getAttribute('data-copy-text') || '';
        if (kind === 'notes') text = notes.value;
        if (kind === 'actual') text = actual.value;
        if (kind === 'bug') text = bugInput.value;
        if (kind === 'attachments') text = attachmentsText();
        if (kind === 'summary') {
          var stepsBtn = card.querySelector('[data-copy="steps"]');
          var stepsText = stepsBtn ? (stepsBtn.getAttribute('data-copy-text') || '') : '';
          var parts = [
            'Title: ' + card.getAttribute('data-case-title'),
            'Status: ' + status.value
          ];
          if (bugInput.value) parts.push('Bug: ' + bugInput.value);
          if (stepsText) parts.push('Steps:\n' + stepsText);
          if (notes.value) parts.push('Notes:\n' + notes.value);
          if (actual.value) parts.push('Actual result:\n' + actual.value);
          var atts = attachmentsText();
          if (atts) parts.push('Attachments:\n' + atts);
          text = parts.join('\n\n');
        }
        copyText(text, btn);
      });
    });
  });
  var envCopyBtn = document.querySelector('.env-copy .copy-btn');
  if (envCopyBtn) {
    envCopyBtn.addEventListener('click', function () {
      var channels = [];
      channelBoxes.forEach(function (box) { if (box.checked) channels.push(box.value); });
      var envText = [
        'Platform: ' + (document.getElementById('env-platform').value || ''),
        'OS version: ' + (document.getElementById('env-os').value || ''),
        'App version: ' + (document.getElementById('env-version').value || ''),
        'Revision: ' + (document.getElementById('env-revision').value || ''),
        'Channel: ' + channels.join(', ')
      ].join('\n');
      copyText(envText, envCopyBtn);
    });
  }
  var versionBtn = document.querySelector('[data-copy="version"]');
  var versionRaw = document.getElementById('version-raw');
  if (versionBtn && versionRaw) {
    versionBtn.addEventListener('click', function () {
      var parseAndApply = function () {
        var lines = (versionRaw.value || '').split(/\r?\n/).map(function (l) { return l.trim(); }).filter(Boolean);
        var productLine = lines.find(function (l) { return l.indexOf('Brave') === 0; }) || '';
        var m = productLine.match(/\S+\s+(\S+).*?(nightly|beta|stable)/i);
        if (m) {
          document.getElementById('env-version').value = m[1];
          document.getElementById('env-version').dispatchEvent(new Event('input'));
          var normalized = m[2].toLowerCase();
          channelBoxes.forEach(function (box) {
            if (box.value.toLowerCase().indexOf(normalized) !== -1) box.checked = true;
          });
          updateChannels();
        }
        var osLine = lines.find(function (l) { return l.indexOf('OS') === 0; }) || '';
        var om = osLine.match(/OS\s+(.*)$/i);
        if (om) {
          document.getElementById('env-os').value = om[1];
          document.getElementById('env-os').dispatchEvent(new Event('input'));
        }
        var revLine = lines.find(function (l) { return l.indexOf('Revision') === 0; }) || '';
        var rm = revLine.match(/Revision\s+(.*)$/i);
        if (rm) {
          document.getElementById('env-revision').value = rm[1];
          document.getElementById('env-revision').dispatchEvent(new Event('input'));
        }
        logEvent('Parsed diagnostics applied to environment');
      };
      if (navigator.clipboard && navigator.clipboard.readText) {
        navigator.clipboard.readText().then(function (text) {
          versionRaw.value = text;
          parseAndApply();
        }).catch(parseAndApply);
      } else {
        parseAndApply();
      }
    });
  }
  var downloadFile = function (filename, content, type) {
    var blob = new Blob([content], { type: type });
    var url = URL.createObjectURL(blob);
    var link = document.createElement('a');
    link.href = url;
    link.download = filename;
    document.body.appendChild(link);
    link.click();
    link.remove();
    setTimeout(function () { URL.revokeObjectURL(url); }, 1000);
  };
  var buildReport = function () {
    var cases = [];
    document.querySelectorAll('.case').forEach(function (card) {
      var key = card.getAttribute('data-case-key');
      var images = [];
      card.querySelectorAll('.case-proof img').forEach(function (img) {
        images.push({ name: img.dataset.name || '', payload: img.src });
      });
      cases.push({
        key: key,
        title: card.getAttribute('data-case-title'),
        checked: card.querySelector('.case-check').checked,
        status: card.querySelector('.case-status').value,
        notes: card.querySelector('.case-notes').value,
        actual_result: card.querySelector('.case-actual').value,
        bug_link: card.querySelector('.bug-link-input').value.trim(),
        attachments: images
      });
    });
    return {
      title: document.title,
      generated_at: new Date().toISOString(),
      run_id: runId,
      collector: (collector && collector.value) || '',
      environment: {
        platform: document.getElementById('env-platform').value || '',
        os_version: document.getElementById('env-os').value || '',
        app_version: document.getElementById('env-version').value || '',
        revision: document.getElementById('env-revision').value || '',
        channels: updateChannels()
      },
      logs: state.logs || [],
      cases: cases
    };
  };
  var exportJSON = document.getElementById('export-json');
  if (exportJSON) {
    exportJSON.addEventListener('click', function () {
      var report = buildReport();
      downloadFile(slugify(report.title) + '-report.json', JSON.stringify(report, null, 2), 'application/json');
    });
  }
  var exportLog = document.getElementById('export-log');
  if (exportLog) {
    exportLog.addEventListener('click', function () {
      var report = buildReport();
      downloadFile(slugify(report.title) + '-activity-log.json', JSON.stringify(report.logs || [], null, 2), 'application/json');
    });
  }
  var templateSelect = document.getElementById('env-template');
  if (templateSelect) {
    var templates = [];
    try { templates = JSON.parse(templateSelect.getAttribute('data-templates') || '[]'); } catch (err) {}
    templateSelect.addEventListener('change', function () {
      var opt = templateSelect.selectedOptions[0];
      if (!opt || !opt.value) return;
      var tpl = templates.find(function (t) { return t.name === opt.value; });
      if (tpl) {
        var assign = function (id, value) {
          var input = document.getElementById(id);
          input.value = value || '';
          input.dispatchEvent(new Event('input'));
        };
        assign('env-platform', tpl.platform);
        assign('env-os', tpl.os_version);
        assign('env-version', tpl.app_version);
        assign('env-revision', tpl.revision);
      }
      logEvent('Template applied: ' + opt.value);
    });
  }
  renderStatusChart();
})();
`
