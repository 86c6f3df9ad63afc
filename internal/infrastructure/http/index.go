package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleIndex renders the chat UI. Answers stream in as plain text and are
// swapped for the server-rendered HTML once complete.
func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>AssessIQ Help Desk</title>
    <style>
        body { font-family: system-ui, sans-serif; background: #f5f6fa; margin: 0; }
        .container { max-width: 720px; margin: 0 auto; padding: 24px; }
        #chat-container { background: #fff; border-radius: 8px; height: 60vh; overflow-y: auto; padding: 16px; }
        .message { margin: 8px 0; padding: 10px 14px; border-radius: 8px; white-space: normal; }
        .message.user { background: #4f46e5; color: #fff; margin-left: 20%; }
        .message.assistant { background: #eef0f7; margin-right: 20%; }
        .message p, .message ul, .message ol { margin: 0 0 4px 0; }
        .spacer { height: 8px; }
        .cursor { animation: blink 1s step-end infinite; }
        @keyframes blink { 50% { opacity: 0; } }
        form { display: flex; gap: 8px; margin-top: 12px; }
        input { flex: 1; padding: 10px; border-radius: 6px; border: 1px solid #ccc; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>AssessIQ Help Desk</h1>
            <p class="subtitle">Questions about uploads, evaluation, results and grievances</p>
        </header>

        <main>
            <div id="chat-container">
                <div id="messages"></div>
            </div>

            <form id="query-form" onsubmit="sendQuery(event)">
                <input type="text" id="query-input" name="query" placeholder="Ask a question..." autocomplete="off">
                <button type="submit" id="send-btn">Send</button>
            </form>
        </main>
    </div>

    <script>
        function sendQuery(e) {
            e.preventDefault();
            const input = document.getElementById('query-input');
            const messages = document.getElementById('messages');
            const container = document.getElementById('chat-container');
            const query = input.value.trim();

            messages.innerHTML += '<div class="message user">' + escapeHtml(query) + '</div>';

            const responseId = 'response-' + Date.now();
            messages.innerHTML += '<div class="message assistant" id="' + responseId + '"><span class="cursor">▊</span></div>';
            input.value = '';
            container.scrollTop = container.scrollHeight;

            const eventSource = new EventSource('/api/query/stream?q=' + encodeURIComponent(query));
            const responseEl = document.getElementById(responseId);
            let fullResponse = '';

            eventSource.onmessage = function(event) {
                const data = JSON.parse(event.data);
                if (data.done) {
                    eventSource.close();
                    responseEl.innerHTML = data.html;
                } else {
                    fullResponse += data.content;
                    responseEl.innerHTML = escapeHtml(fullResponse) + '<span class="cursor">▊</span>';
                }
                container.scrollTop = container.scrollHeight;
            };

            eventSource.onerror = function() {
                eventSource.close();
                if (!fullResponse) {
                    responseEl.innerHTML = '<span class="error">Connection error</span>';
                }
            };
        }

        function escapeHtml(text) {
            const div = document.createElement('div');
            div.textContent = text;
            return div.innerHTML;
        }
    </script>
</body>
</html>`
