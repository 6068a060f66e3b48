package site

// pageTemplate is the Go html/template for each documentation page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.ProjectName}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body>
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <h2 class="project-title">{{.ProjectName}}</h2>
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      {{.TreeHTML}}
    </div>
  </nav>
  <main class="content">
    <div class="top-bar">
      <span class="live-status" id="live-status" title="Term explanations">offline</span>
      <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">&#9681;</button>
    </div>
    <article class="page-content">
      {{.Content}}
    </article>
  </main>
  <div class="termlens-overlay" id="termlens-overlay" hidden></div>
  <script>window.TERMLENS = {liveURL: {{.LiveURL}}};</script>
  <script src="{{.BasePath}}overlay.js"></script>
</body>
</html>`

// cssContent is the stylesheet for the documentation site. The overlay
// box metrics must match what the live bridge assumes when it measures
// explanations.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-sidebar: #f1f3f5;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --accent-light: #e7f5ff;
  --code-bg: #f1f3f5;
  --sidebar-width: 280px;
  --content-max-width: 900px;
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.1);
}

[data-theme="dark"] {
  --bg: #1a1b26;
  --bg-sidebar: #16171f;
  --text: #c0caf5;
  --text-muted: #565f89;
  --border: #292e42;
  --accent: #7aa2f7;
  --accent-light: #1a1b2e;
  --code-bg: #1f2030;
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.4);
}

*, *::before, *::after { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
}

.sidebar {
  position: fixed;
  top: 0;
  bottom: 0;
  left: 0;
  width: var(--sidebar-width);
  overflow-y: auto;
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  padding: 16px;
}

.sidebar ul { list-style: none; margin: 0; padding-left: 12px; }
.sidebar li.dir > ul { display: none; }
.sidebar li.dir.expanded > ul { display: block; }
.sidebar .dir-toggle { cursor: pointer; font-weight: 600; }
.sidebar a { color: var(--text); text-decoration: none; }
.sidebar a.active { color: var(--accent); font-weight: 600; }

.content {
  margin-left: var(--sidebar-width);
  padding: 24px 40px;
}

.top-bar {
  display: flex;
  justify-content: flex-end;
  gap: 12px;
  align-items: center;
}

.live-status { font-size: 12px; color: var(--text-muted); }
.live-status.online { color: var(--accent); }

.theme-toggle {
  background: none;
  border: 1px solid var(--border);
  border-radius: 6px;
  color: var(--text);
  cursor: pointer;
}

.page-content { max-width: var(--content-max-width); }
.page-content pre {
  background: var(--code-bg);
  padding: 12px;
  border-radius: 6px;
  overflow-x: auto;
}
.page-content code { background: var(--code-bg); padding: 0 4px; border-radius: 4px; }
.page-content pre code { background: none; padding: 0; }

.term-highlight {
  border-bottom: 1px dotted var(--accent);
  cursor: help;
}

.termlens-overlay {
  position: fixed;
  z-index: 1000;
  max-width: 300px;
  padding: 12px;
  font-size: 13px;
  line-height: 20px;
  color: var(--text);
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 6px;
  box-shadow: var(--shadow-lg);
  white-space: pre-wrap;
}

.termlens-overlay .term { display: block; font-weight: 600; }
.termlens-overlay.loading { color: var(--text-muted); font-style: italic; }

@media (max-width: 768px) {
  .sidebar { display: none; }
  .content { margin-left: 0; padding: 16px; }
}
`

// jsContent drives the sidebar and theme and connects the page to the
// overlay websocket. Page events are forwarded as frames; the server
// decides what the overlay shows and where.
const jsContent = `(function() {
  "use strict";

  var html = document.documentElement;
  var config = window.TERMLENS || {};

  // ===== Theme toggle =====
  function getStoredTheme() {
    try { return localStorage.getItem("termlens-theme"); } catch(e) { return null; }
  }

  function setTheme(theme) {
    html.setAttribute("data-theme", theme);
    try { localStorage.setItem("termlens-theme", theme); } catch(e) {}
  }

  var stored = getStoredTheme();
  if (stored) {
    setTheme(stored);
  } else if (window.matchMedia && window.matchMedia("(prefers-color-scheme: dark)").matches) {
    setTheme("dark");
  }

  var themeToggle = document.getElementById("theme-toggle");
  if (themeToggle) {
    themeToggle.addEventListener("click", function() {
      setTheme(html.getAttribute("data-theme") === "dark" ? "light" : "dark");
    });
  }

  // ===== Sidebar directories =====
  document.querySelectorAll(".sidebar .dir-toggle").forEach(function(el) {
    el.addEventListener("click", function() {
      el.parentElement.classList.toggle("expanded");
    });
  });

  // ===== Live overlay =====
  var box = document.getElementById("termlens-overlay");
  var status = document.getElementById("live-status");
  var ws = null;
  var retry = 1000;
  var container = ".page-content";
  var lastX = window.scrollX;
  var lastY = window.scrollY;

  function liveURL() {
    if (config.liveURL) return config.liveURL;
    if (location.protocol !== "http:" && location.protocol !== "https:") return "";
    var scheme = location.protocol === "https:" ? "wss:" : "ws:";
    return scheme + "//" + location.host + "/overlay/ws";
  }

  function send(frame) {
    if (ws && ws.readyState === WebSocket.OPEN) {
      ws.send(JSON.stringify(frame));
    }
  }

  function rectOf(r) {
    return { top: r.top, left: r.left, width: r.width, height: r.height };
  }

  function viewport() {
    return { width: window.innerWidth, height: window.innerHeight };
  }

  function render(view) {
    if (!view || view.state === "hidden") {
      box.hidden = true;
      box.textContent = "";
      return;
    }
    box.textContent = "";
    box.classList.toggle("loading", view.state === "loading");
    if (view.term) {
      var title = document.createElement("span");
      title.className = "term";
      title.textContent = view.term;
      box.appendChild(title);
    }
    box.appendChild(document.createTextNode(view.content || ""));
    box.style.top = view.top + "px";
    box.style.left = view.left + "px";
    box.hidden = false;
  }

  function setStatus(online) {
    if (!status) return;
    status.textContent = online ? "live" : "offline";
    status.classList.toggle("online", online);
  }

  function connect() {
    var url = liveURL();
    if (!url) return;
    var vp = viewport();
    ws = new WebSocket(url + "?w=" + vp.width + "&h=" + vp.height);
    ws.onopen = function() {
      retry = 1000;
      setStatus(true);
    };
    ws.onmessage = function(ev) {
      var frame;
      try { frame = JSON.parse(ev.data); } catch(e) { return; }
      if (frame.type === "hello" && frame.options) {
        container = frame.options.container_selector || container;
      } else if (frame.type === "view") {
        render(frame.view);
      } else if (frame.type === "error") {
        console.warn("termlens:", frame.message);
      }
    };
    ws.onclose = function() {
      setStatus(false);
      render(null);
      setTimeout(connect, retry);
      retry = Math.min(retry * 2, 30000);
    };
  }

  function marker(target) {
    if (!target || !target.closest) return null;
    var el = target.closest(".term-highlight");
    if (el && container && !el.closest(container)) return null;
    return el;
  }

  document.addEventListener("mouseover", function(ev) {
    var el = marker(ev.target);
    if (!el || (ev.relatedTarget && el.contains(ev.relatedTarget))) return;
    send({ type: "hover_enter", text: el.getAttribute("data-term") || el.textContent, rect: rectOf(el.getBoundingClientRect()) });
  });

  document.addEventListener("mouseout", function(ev) {
    var el = marker(ev.target);
    if (!el || (ev.relatedTarget && el.contains(ev.relatedTarget))) return;
    send({ type: "hover_leave" });
  });

  box.addEventListener("mouseenter", function() { send({ type: "overlay_enter" }); });
  box.addEventListener("mouseleave", function() { send({ type: "overlay_leave" }); });

  document.addEventListener("mousedown", function(ev) {
    send({ type: "pointer_down", inside: box.contains(ev.target) });
  });

  document.addEventListener("mouseup", function(ev) {
    if (box.contains(ev.target)) return;
    var sel = window.getSelection();
    var frame = { type: "pointer_up", text: sel ? sel.toString() : "", collapsed: !sel || sel.isCollapsed };
    if (sel && sel.rangeCount > 0 && !sel.isCollapsed) {
      frame.rect = rectOf(sel.getRangeAt(0).getBoundingClientRect());
    }
    send(frame);
  });

  window.addEventListener("scroll", function() {
    var dx = lastX - window.scrollX;
    var dy = lastY - window.scrollY;
    lastX = window.scrollX;
    lastY = window.scrollY;
    if (dx !== 0 || dy !== 0) send({ type: "scroll", dx: dx, dy: dy });
  }, { passive: true });

  window.addEventListener("resize", function() {
    send({ type: "resize", viewport: viewport() });
  });

  document.addEventListener("keydown", function(ev) {
    if (ev.key === "Escape") send({ type: "hide" });
  });

  connect();
})();
`
