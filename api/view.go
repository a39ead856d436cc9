package api

import "net/http"

func (s *Server) handleViewPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(viewPageHTML))
}

const viewPageHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Pagamento PIX</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    background: #0a0a0a;
    color: #e0e0e0;
    display: flex;
    justify-content: center;
    align-items: center;
    min-height: 100vh;
  }
  .card {
    background: #1a1a1a;
    border: 1px solid #333;
    border-radius: 16px;
    padding: 48px;
    text-align: center;
    max-width: 460px;
    width: 100%;
  }
  h1 { font-size: 20px; font-weight: 600; margin-bottom: 8px; }
  .subtitle { color: #888; font-size: 14px; margin-bottom: 32px; }
  #qr-container {
    width: 280px; height: 280px;
    margin: 0 auto 24px;
    display: flex;
    align-items: center;
    justify-content: center;
    background: #fff;
    border-radius: 12px;
  }
  #qr-container img { width: 260px; height: 260px; }
  #code {
    font-family: ui-monospace, SFMono-Regular, Menlo, monospace;
    font-size: 11px;
    word-break: break-all;
    color: #888;
    background: #111;
    border: 1px solid #333;
    border-radius: 8px;
    padding: 12px;
    margin-bottom: 16px;
    cursor: pointer;
  }
  #status { font-size: 13px; color: #888; }
  .copied { color: #4ade80 !important; }
</style>
</head>
<body>
<div class="card">
  <h1>Pagamento PIX</h1>
  <p class="subtitle">Escaneie o QR Code no app do seu banco, ou toque no c&oacute;digo para copiar e colar</p>
  <div id="qr-container">
    <span id="loading">Gerando QR Code...</span>
  </div>
  <div id="code"></div>
  <div id="status"></div>
</div>
<script>
(function() {
  var container = document.getElementById('qr-container');
  var codeEl = document.getElementById('code');
  var statusEl = document.getElementById('status');
  var search = window.location.search;

  fetch('/code' + search)
    .then(function(r) {
      if (!r.ok) { return r.json().then(function(e) { throw new Error(e.error); }); }
      return r.json();
    })
    .then(function(data) {
      var img = document.createElement('img');
      img.setAttribute('alt', 'QR Code PIX');
      // Pin the txid so the image matches the copy-paste code.
      var sep = search ? '&' : '?';
      img.setAttribute('src', '/code/qr' + search + sep + 'txid=' + encodeURIComponent(data.txid));
      while (container.firstChild) container.removeChild(container.firstChild);
      container.appendChild(img);

      codeEl.textContent = data.code;
      codeEl.addEventListener('click', function() {
        navigator.clipboard.writeText(data.code).then(function() {
          statusEl.textContent = 'Código copiado';
          statusEl.className = 'copied';
        });
      });
    })
    .catch(function(err) {
      statusEl.textContent = err.message || 'Erro ao gerar o código';
    });
})();
</script>
</body>
</html>`
