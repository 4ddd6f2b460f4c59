package api

import "html/template"

type pageData struct {
	Mode     string
	Multi    bool
	MaxFiles int
	Headers  []string
}

// pageTemplate is the whole front end: a PDF picker, the extraction trigger,
// the escaped table renderer and the export control. The script drives
// /upload or /extract depending on the server's mode.
var pageTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>CV Extractor</title>
    <style>
      body {
        margin: 0 auto;
        max-width: 860px;
        padding: 24px;
        font-family: system-ui, -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
        color: #1c2333;
        background: #f6f7fb;
      }
      h1 { font-size: 1.4rem; }
      .panel {
        background: #fff;
        border: 1px solid #dde1ee;
        border-radius: 8px;
        padding: 16px;
        margin-bottom: 16px;
      }
      button {
        padding: 8px 18px;
        border: none;
        border-radius: 6px;
        background: #4472c4;
        color: #fff;
        font-size: 0.95rem;
        cursor: pointer;
      }
      button:disabled { background: #9aa7c7; cursor: wait; }
      #file-names { margin-left: 10px; color: #5a6378; }
      #status { margin-top: 10px; color: #5a6378; }
      table {
        border-collapse: collapse;
        width: 100%;
        margin-bottom: 14px;
        background: #fff;
      }
      th, td {
        border: 1px solid #dde1ee;
        padding: 6px 10px;
        font-size: 0.85rem;
        text-align: left;
        vertical-align: top;
      }
      th { background: #4472c4; color: #fff; }
      #download-link { margin-left: 12px; font-size: 0.9rem; }
    </style>
  </head>
  <body>
    <h1>CV Extractor</h1>
    <div class="panel">
      <input type="file" id="cv-input" accept=".pdf" {{if .Multi}}multiple{{end}} />
      <span id="file-names">No file selected</span>
      <p>
        <button id="submit-btn" type="button">Extract</button>
        {{if .Multi}}<small>Select up to {{.MaxFiles}} PDF files.</small>{{end}}
      </p>
      <div id="status" hidden></div>
    </div>
    <div id="results"></div>
    <p>
      <button id="export-btn" type="button" hidden>Export to Google Sheets</button>
      <a id="download-link" href="/export.xlsx" hidden>Download XLSX</a>
    </p>
    <script>
      var MODE = {{.Mode}};
      var MAX_FILES = {{.MaxFiles}};
      var HEADERS = {{.Headers}};
      var ENDPOINT = MODE === "single" ? "/upload" : "/extract";

      var input = document.getElementById("cv-input");
      var fileNames = document.getElementById("file-names");
      var submitBtn = document.getElementById("submit-btn");
      var status = document.getElementById("status");
      var results = document.getElementById("results");
      var exportBtn = document.getElementById("export-btn");
      var downloadLink = document.getElementById("download-link");

      // The export payload mirrors whatever was last rendered; it is only set
      // after a successful extraction, so export can never run before one.
      var lastResult = null;

      input.addEventListener("change", function () {
        var names = Array.from(input.files).map(function (f) { return f.name; });
        fileNames.textContent = names.length ? names.join(", ") : "No file selected";
      });

      submitBtn.addEventListener("click", async function () {
        var files = Array.from(input.files);
        if (files.length === 0) {
          alert("Please select a PDF file first.");
          return;
        }
        if (MODE === "multi" && files.length > MAX_FILES) {
          alert("Please select at most " + MAX_FILES + " files.");
          return;
        }

        var form = new FormData();
        if (MODE === "single") {
          form.append("file", files[0]);
        } else {
          files.forEach(function (f) { form.append("files", f); });
        }

        submitBtn.disabled = true;
        status.hidden = false;
        status.textContent = "Processing...";
        try {
          var resp = await fetch(ENDPOINT, { method: "POST", body: form });
          var data = await resp.json();
          if (!resp.ok) {
            throw new Error(data.error || "extraction failed");
          }
          renderResult(data);
        } catch (err) {
          console.error(err);
          alert("Extraction failed: " + err.message);
        } finally {
          submitBtn.disabled = false;
          status.hidden = true;
        }
      });

      function renderResult(data) {
        results.textContent = "";
        exportBtn.hidden = true;
        downloadLink.hidden = true;
        lastResult = null;

        if (MODE === "single") {
          var entries = Object.entries(data || {});
          if (entries.length === 0) {
            alert("Extraction returned no fields.");
            return;
          }
          var rows = entries.map(function (e) { return [e[0], String(e[1])]; });
          results.appendChild(buildTable(["Field", "Value"], rows));
          lastResult = {
            headers: HEADERS,
            rows: [HEADERS.map(function (h) { return String(data[h] || ""); })]
          };
        } else {
          if (!data || !Array.isArray(data.rows) || data.rows.length === 0) {
            alert("Extraction returned no rows.");
            return;
          }
          for (var i = 0; i < data.rows.length; i++) {
            if (!Array.isArray(data.rows[i])) {
              results.textContent = "";
              alert("Unexpected response shape.");
              return;
            }
            results.appendChild(buildTable(HEADERS, [data.rows[i].map(String)]));
          }
          lastResult = { headers: HEADERS, rows: data.rows };
        }

        exportBtn.hidden = false;
        downloadLink.hidden = false;
      }

      // Cells are written through textContent so backend values render as
      // text, never as markup.
      function buildTable(headers, rows) {
        var table = document.createElement("table");
        var head = document.createElement("tr");
        headers.forEach(function (h) {
          var th = document.createElement("th");
          th.textContent = h;
          head.appendChild(th);
        });
        table.appendChild(head);
        rows.forEach(function (row) {
          var tr = document.createElement("tr");
          row.forEach(function (cell) {
            var td = document.createElement("td");
            td.textContent = cell;
            tr.appendChild(td);
          });
          table.appendChild(tr);
        });
        return table;
      }

      exportBtn.addEventListener("click", async function () {
        if (!lastResult) {
          return;
        }
        var originalLabel = exportBtn.textContent;
        exportBtn.disabled = true;
        exportBtn.textContent = "Exporting...";
        try {
          var resp = await fetch("/export", {
            method: "POST",
            headers: { "Content-Type": "application/json" },
            body: JSON.stringify(lastResult)
          });
          var data = await resp.json().catch(function () { return {}; });
          if (resp.ok && data.sheetUrl) {
            window.open(data.sheetUrl, "_blank");
          } else {
            alert("Export failed.");
          }
        } catch (err) {
          console.error(err);
          alert("Export failed.");
        } finally {
          exportBtn.disabled = false;
          exportBtn.textContent = originalLabel;
        }
      });
    </script>
  </body>
</html>
`))
