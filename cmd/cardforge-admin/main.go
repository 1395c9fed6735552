// Command cardforge-admin is a small interactive console client for
// exercising a running cardforge-server over its HTTP surface — register,
// login, open a pack, check your collection, list friends, and search for
// players — the same
// shape of operator tool the rest of the fleet ships next to its services.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

var serverURL = "http://localhost:8080"
var currentToken string
var currentUser string

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

func main() {
	if url := os.Getenv("CARDFORGE_SERVER"); url != "" {
		serverURL = url
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("CardForge Admin Console")
	fmt.Printf("Target Server: %s\n", serverURL)

	for {
		if !loginLoop(reader) {
			return
		}

		fmt.Println("\n--- SESSION ESTABLISHED ---")
		fmt.Printf("Logged in as %s.\n", currentUser)
		fmt.Println("Commands: open_pack, collection, friends, search <name>, logout, quit")

		logout := false
		for !logout {
			fmt.Printf("[%s]> ", currentUser)
			text, _ := reader.ReadString('\n')
			text = strings.TrimSpace(text)
			parts := strings.Fields(text)
			if len(parts) == 0 {
				continue
			}

			switch parts[0] {
			case "open_pack":
				doOpenPack()
			case "collection":
				doCollection()
			case "friends":
				doFriends()
			case "search":
				if len(parts) < 2 {
					fmt.Println("Usage: search <name>")
					continue
				}
				doSearch(parts[1])
			case "logout":
				currentToken = ""
				currentUser = ""
				logout = true
			case "quit", "exit":
				os.Exit(0)
			default:
				fmt.Println("Unknown command.")
			}
		}
	}
}

func loginLoop(reader *bufio.Reader) bool {
	for {
		fmt.Println("\n--- AUTHENTICATION ---")
		fmt.Print("Email: ")
		email, _ := reader.ReadString('\n')
		email = strings.TrimSpace(email)
		if email == "quit" || email == "exit" {
			return false
		}
		fmt.Print("Password: ")
		password, _ := reader.ReadString('\n')
		password = strings.TrimSpace(password)

		fmt.Print("Login... ")
		if doLogin(email, password) {
			currentUser = email
			return true
		}
		fmt.Println("Login failed. Enter a display name to register an account with these credentials, or try again.")
		fmt.Print("Display name (leave blank to retry login): ")
		displayName, _ := reader.ReadString('\n')
		displayName = strings.TrimSpace(displayName)
		if displayName != "" {
			doRegister(email, password, displayName)
		}
	}
}

func doRegister(email, password, displayName string) bool {
	payload, _ := json.Marshal(map[string]string{
		"email": email, "password": password, "displayName": displayName,
	})
	resp, err := http.Post(serverURL+"/api/register", "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Connection error: %v\n", err)
		return false
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	var r registerResponse
	_ = json.Unmarshal(body, &r)
	fmt.Println(r.Message)
	return r.Success
}

func doLogin(email, password string) bool {
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(serverURL+"/api/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Connection error: %v\n", err)
		return false
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	var r loginResponse
	_ = json.Unmarshal(body, &r)
	if r.Success {
		currentToken = r.Token
	}
	return r.Success
}

func authedGet(path string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, serverURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+currentToken)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func authedPost(path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, serverURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+currentToken)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func doOpenPack() {
	body, err := authedPost("/api/open_pack", map[string]string{})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(string(body))
}

func doCollection() {
	body, err := authedGet("/api/collection/@me")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(string(body))
}

func doFriends() {
	body, err := authedGet("/api/friends")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(string(body))
}

func doSearch(name string) {
	body, err := authedGet("/api/users/search?name=" + url.QueryEscape(name))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(string(body))
}
