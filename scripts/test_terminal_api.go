package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000"

// Admin credentials for the protected endpoints; override via env when the
// server is not running the defaults.
var (
	adminUser = envOr("ADMIN_USERNAME", "ben")
	adminPass = envOr("ADMIN_PASSWORD", "admin123")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // chat replies wait on the model, no timeout
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func runCommand(step, command string) map[string]interface{} {
	color.Yellow("\n[TERMINAL] %s: '%s'", step, command)
	resp, body, err := sendRequest("POST", "/command", "", map[string]string{"command": command})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var result map[string]interface{}
	json.Unmarshal(body, &result)
	prettyPrint(result)
	return result
}

func main() {
	color.Cyan("🚀 Starting Portfolio Terminal API Smoke Test\n")

	// 1. Health check
	color.Yellow("\n[SERVER] 1. Health Check")
	resp, body, err := sendRequest("GET", "/health", "", nil)
	if err != nil {
		color.Red("Failed: %v (is the server running on %s?)", err, baseURL)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var healthResp map[string]interface{}
	json.Unmarshal(body, &healthResp)
	prettyPrint(healthResp)

	// 2-5. Command dispatch
	runCommand("2. Help listing", "help")
	runCommand("3. About text", "about")
	runCommand("4. CV download pointer", "cv")
	runCommand("5. Unknown command", "frobnicate")

	// 6. Enter chat mode
	chatStart := runCommand("6. Enter chat mode", "chat")
	sessionID, _ := chatStart["session_id"].(string)
	if sessionID == "" {
		color.Red("No session_id in chat_start response; skipping chat exchange")
	} else {
		fmt.Printf("Session ID: %s\n", sessionID)

		// 7. One chat exchange
		color.Yellow("\n[CHAT] 7. Ask the assistant")
		chatReq := map[string]interface{}{
			"message":    "What does Ben do at Motorway?",
			"session_id": sessionID,
		}
		resp, body, err = sendRequest("POST", "/chat", "", chatReq)
		if err != nil {
			color.Red("Failed: %v", err)
		} else {
			color.Green("Status: %s", resp.Status)
			var chatResp map[string]interface{}
			json.Unmarshal(body, &chatResp)
			fmt.Printf("Kind: %s\n", chatResp["kind"])
			fmt.Printf("Reply: %s\n", chatResp["output"])
		}

		// 8. Leave chat mode
		color.Yellow("\n[CHAT] 8. Exit chat mode")
		exitReq := map[string]interface{}{"message": "exit", "session_id": sessionID}
		resp, body, err = sendRequest("POST", "/chat", "", exitReq)
		if err != nil {
			color.Red("Failed: %v", err)
		} else {
			color.Green("Status: %s", resp.Status)
			var exitResp map[string]interface{}
			json.Unmarshal(body, &exitResp)
			prettyPrint(exitResp)
		}
	}

	// 9. Admin login
	color.Yellow("\n[ADMIN] 9. Login")
	loginReq := map[string]string{"username": adminUser, "password": adminPass}
	resp, body, err = sendRequest("POST", "/api/admin/login", "", loginReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var loginResp map[string]interface{}
	json.Unmarshal(body, &loginResp)

	var adminToken string
	if data, ok := loginResp["data"].(map[string]interface{}); ok {
		if tok, ok := data["token"].(string); ok {
			adminToken = tok
		}
	}
	if adminToken == "" {
		color.Red("No token in login response; skipping protected endpoints")
		prettyPrint(loginResp)
		return
	}

	// 10. Usage stats
	color.Yellow("\n[ADMIN] 10. Usage Stats")
	resp, body, err = sendRequest("GET", "/api/admin/stats", adminToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var statsResp map[string]interface{}
		json.Unmarshal(body, &statsResp)
		prettyPrint(statsResp)
	}

	// 11. Recent logs
	color.Yellow("\n[ADMIN] 11. Recent Logs (limit 5)")
	resp, body, err = sendRequest("GET", "/api/admin/logs?limit=5", adminToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var logsResp map[string]interface{}
		json.Unmarshal(body, &logsResp)
		if data, ok := logsResp["data"].([]interface{}); ok {
			fmt.Printf("Entries: %d\n", len(data))
		} else {
			prettyPrint(logsResp)
		}
	}

	color.Cyan("\n✅ Smoke test complete")
}
