package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const baseURL = "http://localhost:8080/orders"

var roles = []string{"ADMIN", "STAFF", "DRIVER"}

func main() {
	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(doRequest)
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func randomTarget() string {
	id := strconv.Itoa(rand.Intn(50) + 1)
	switch rand.Intn(4) {
	case 0:
		return baseURL + "?per_page=10&page=" + strconv.Itoa(rand.Intn(3)+1)
	case 1:
		return baseURL + "/" + id + "/receipt"
	case 2:
		return baseURL + "?status=PAID&customer_id=" + strconv.Itoa(rand.Intn(20)+1)
	default:
		return baseURL + "/" + id
	}
}

func doRequest() {
	url := randomTarget()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
		return
	}
	req.Header.Set("X-User-ID", strconv.Itoa(rand.Intn(5)+1))
	req.Header.Set("X-User-Role", roles[rand.Intn(len(roles))])

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
		return
	}
	resp.Body.Close()
	fmt.Println("GET", strings.TrimPrefix(url, baseURL), "->", resp.Status)
}
