package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"gitlab.com/dirk.krummacker/peoplehub/pkg/model"
)

const serverPort = 8080

// Usage example on the command line:
// > go run main.go
func main() {
	fmt.Println()
	fmt.Println("  Elements      POST       PUT       GET    DELETE ")
	fmt.Println("---------------------------------------------------")
	sizes := []int{100, 500, 1000, 5000}
	postBody := []byte(`{
		"name": "Marc Antoine",
		"email": "marc.antoine@example.fr",
		"phone": "06 99 77 55 33"
	}`)
	putBody := []byte(`{
		"job": "Consultant",
		"notes": "Rencontré à Lyon"
	}`)
	for _, loops := range sizes {
		fmt.Printf("%10d", loops)
		var ids []string
		{
			// POST requests
			var duration int64
			for i := 0; i < loops; i++ {
				id, d := sendPostRequest(bytes.NewReader(postBody))
				ids = append(ids, id)
				duration += d
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		{
			// PUT requests
			f := func(id string) int64 {
				return sendPutGetDeleteRequest(id, http.MethodPut, bytes.NewReader(putBody))
			}
			callInLoop(ids, f)
		}
		{
			// GET requests
			f := func(id string) int64 {
				return sendPutGetDeleteRequest(id, http.MethodGet, nil)
			}
			callInLoop(ids, f)
		}
		{
			// DELETE requests
			f := func(id string) int64 {
				return sendPutGetDeleteRequest(id, http.MethodDelete, nil)
			}
			callInLoop(ids, f)
		}
		fmt.Println()
	}
}

func callInLoop(ids []string, f func(id string) int64) {
	shuffled := append([]string(nil), ids...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	var duration int64
	for _, id := range shuffled {
		d := f(id)
		duration += d
	}
	fmt.Printf("%10d", duration/int64(len(ids)*1000))
}

func sendPostRequest(bodyReader io.Reader) (string, int64) {
	requestURL := fmt.Sprintf("http://localhost:%d/people", serverPort)
	resBody, duration := sendRequest(http.MethodPost, requestURL, bodyReader)
	var person model.Person
	err := json.Unmarshal(resBody, &person)
	if err != nil {
		fmt.Println("could not unmarshal JSON", err)
		panic(err)
	}
	return person.Id, duration
}

func sendPutGetDeleteRequest(id string, method string, bodyReader io.Reader) int64 {
	requestURL := fmt.Sprintf("http://localhost:%d/people/%s", serverPort, id)
	_, duration := sendRequest(method, requestURL, bodyReader)
	return duration
}

func sendRequest(method string, requestURL string, bodyReader io.Reader) ([]byte, int64) {
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		fmt.Println("could not create request", err)
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	before := time.Now().UnixNano()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println("could not read response body", err)
		panic(err)
	}
	after := time.Now().UnixNano()
	return resBody, after - before
}
