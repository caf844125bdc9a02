package handlers

import (
	"net/http"

	"github.com/lokbasha/lokbasha/internal/services/session"
	"github.com/rs/zerolog/log"
)

// HandleWidgetJS serves the embeddable widget loader. Loading it creates
// an anonymous session so the chat endpoint works before login.
func HandleWidgetJS(sessionService *session.Service, w http.ResponseWriter, r *http.Request) {
	log.Info().
		Str("client_ip", r.RemoteAddr).
		Str("user_agent", r.UserAgent()).
		Msg("Widget.js requested")

	// Create anonymous session
	if err := sessionService.CreateSession(w, "", "", "en"); err != nil {
		log.Error().Err(err).Msg("Failed to create session for widget")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Set appropriate headers
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	if _, err := w.Write([]byte(widgetJS)); err != nil {
		return
	}

	log.Info().
		Str("client_ip", r.RemoteAddr).
		Int("content_length", len(widgetJS)).
		Msg("Widget.js served successfully")
}

// HandleWidgetPage serves the standalone chat form page.
func HandleWidgetPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(widgetHTML)); err != nil {
		log.Error().Err(err).Msg("Failed to write widget page")
	}
}

const widgetJS = `(function () {
	"use strict";

	window.LOKBASHA_WIDGET_ID = "lokbasha-" + Math.random().toString(36).substring(2);

	async function send(message, language) {
		var resp = await fetch("/v1/chat/completions", {
			method: "POST",
			credentials: "include",
			headers: { "Content-Type": "application/json" },
			body: JSON.stringify({ message: message, language: language })
		});
		if (!resp.ok) {
			var err = await resp.json().catch(function () { return { error: "request failed" }; });
			throw new Error(err.error);
		}
		return resp.json();
	}

	window.LokBasha = { send: send };
})();
`

const widgetHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>LokBasha</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; }
#history { border: 1px solid #ccc; border-radius: 6px; min-height: 320px; padding: 1rem; white-space: pre-wrap; }
form { display: flex; gap: 0.5rem; margin-top: 1rem; }
#message { flex: 1; }
</style>
</head>
<body>
<h1>LokBasha</h1>
<div id="history"></div>
<form id="chat">
<select id="language"></select>
<input id="message" maxlength="1000" placeholder="Ask me anything..." autocomplete="off">
<button type="submit">Send</button>
</form>
<script src="/v1/widget.js"></script>
<script>
(async function () {
	var resp = await fetch("/v1/languages");
	var data = await resp.json();
	var select = document.getElementById("language");
	data.languages.forEach(function (lang) {
		var opt = document.createElement("option");
		opt.value = lang.code;
		opt.textContent = lang.native_name;
		select.appendChild(opt);
	});

	var history = document.getElementById("history");
	document.getElementById("chat").addEventListener("submit", async function (e) {
		e.preventDefault();
		var input = document.getElementById("message");
		var message = input.value.trim();
		if (!message) return;
		input.value = "";
		history.textContent += "\n> " + message + "\n";
		try {
			var out = await window.LokBasha.send(message, select.value);
			history.textContent += out.reply + "\n";
		} catch (err) {
			history.textContent += "[" + err.message + "]\n";
		}
	});
})();
</script>
</body>
</html>
`
