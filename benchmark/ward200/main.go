package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	selaGrpc "liyu1981.xyz/sela-weight-tracker/pkg/grpc"
)

var maxPatients int = 200
var weeks int = 6
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:10801"

var grpcClient *selaGrpc.WeightTrackerClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndLock sync.Mutex

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = selaGrpc.NewWeightTrackerClient(conn)

	fmt.Printf("gRPC client ready\n")

	var startTime time.Time
	var usedTime time.Duration

	// medical ids are at most 7 digits
	idBase := 1000000 + rndInt(8000000)
	startDate := time.Now().AddDate(0, 0, -7*weeks)
	treatmentIDs := make([]string, maxPatients)
	baselines := make([]float64, maxPatients)

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxPatients; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			baselines[i] = rndFloat64(45.0, 95.0, 1)
			treatmentIDs[i] = admit(fmt.Sprintf("%d", idBase+i), startDate, baselines[i])
			fmt.Printf("\radmitted patient %v", i)
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\radmitted %v patients: used time=%v seconds, throughput=%v action/second\n",
		maxPatients, usedTime.Seconds(), float64(maxPatients*2)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxPatients; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			doWeeks(treatmentIDs[i], startDate, baselines[i])
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rrecorded %v weeks for %v patients: used time=%v seconds, throughput=%v action/second\n",
		weeks, maxPatients, usedTime.Seconds(), float64(maxPatients*weeks*2)/usedTime.Seconds(),
	)

	pending, err := grpcClient.ListPendingInterventions(context.Background(), &structpb.Struct{})
	if err != nil {
		log.Fatal("Failed to list pending interventions:", err)
	}
	fmt.Printf("pending interventions: %v\n", len(pending.GetFields()["interventions"].GetListValue().GetValues()))
}

func rndInt(n int) int {
	rndLock.Lock()
	defer rndLock.Unlock()
	return rnd.Intn(n)
}

func flipCoin() bool {
	return rndInt(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndLock.Lock()
	val := min + rnd.Float64()*(max-min)
	rndLock.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func postJSON(path string, payload any) map[string]any {
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s%s", httpHostPort, path), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	body := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if resp.StatusCode >= 300 {
		fmt.Printf("\n%s returned %v: %v\n", path, resp.StatusCode, body)
	}
	return body
}

func admit(medicalID string, startDate time.Time, baseline float64) string {
	patient := postJSON("/api/patients", map[string]any{
		"medical_id": medicalID,
		"name":       "Benchmark " + medicalID,
	})
	treatment := postJSON("/api/treatments", map[string]any{
		"patient_id":      patient["id"],
		"cancer_type":     "head_neck",
		"treatment_start": startDate.Format(time.DateOnly),
		"baseline_weight": baseline,
	})
	id, _ := treatment["id"].(string)
	return id
}

// doWeeks posts one weekly weight per treatment, drifting down, and checks
// the treatment after each post.
func doWeeks(treatmentID string, startDate time.Time, baseline float64) {
	weight := baseline
	for week := 1; week <= weeks; week++ {
		weight = math.Round((weight-rndFloat64(0.0, 1.5, 1))*10) / 10
		date := startDate.AddDate(0, 0, 7*week).Format(time.DateOnly)
		postWeight(treatmentID, weight, date)
		getTreatment(treatmentID)
		fmt.Printf("\rrecorded week %v for treatment %v", week, treatmentID)
		time.Sleep(time.Duration(100+rndInt(1000)) * time.Millisecond)
	}
}

func postWeight(treatmentID string, weight float64, date string) {
	if flipCoin() {
		postJSON(fmt.Sprintf("/api/treatments/%s/weights", treatmentID), map[string]any{
			"weight":       weight,
			"measure_date": date,
		})
		return
	}

	req, _ := structpb.NewStruct(map[string]any{
		"treatment_id": treatmentID,
		"weight":       weight,
		"measure_date": date,
	})
	resp, err := grpcClient.RecordWeight(context.Background(), req)
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	if !resp.GetFields()["success"].GetBoolValue() {
		fmt.Printf("\nresponse success = false: %v\n", resp)
	}
}

func getTreatment(treatmentID string) {
	if flipCoin() {
		resp, err := http.Get(fmt.Sprintf("http://%s/api/treatments/%s", httpHostPort, treatmentID))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp)
		}
		return
	}

	req, _ := structpb.NewStruct(map[string]any{"treatment_id": treatmentID})
	resp, err := grpcClient.GetTreatment(context.Background(), req)
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	if !resp.GetFields()["success"].GetBoolValue() {
		fmt.Printf("\nresponse success = false: %v\n", resp)
	}
}
