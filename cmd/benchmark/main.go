package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/gocarina/gocsv"
	"github.com/samber/lo"

	"github.com/limaJavier/examtabling/pkg/model"
)

const (
	executablePath = "../../bin/examtabling"
	resultsFile    = "benchmark_results.csv"
)

type ResultType int

const (
	complete ResultType = iota
	infeasible
	unverified
)

var (
	strategies  = []string{model.BatchStrategy, model.SearchStrategy}
	resultTypes = map[ResultType]string{
		complete:   "complete",
		infeasible: "infeasible",
		unverified: "unverified",
	}
	windowStart = civil.Date{Year: 2024, Month: 11, Day: 11}
)

type TestMetadata struct {
	Name    string
	Seed    int64
	Courses int
	Faculty int
	Rooms   int
	Days    int
}

type BenchmarkResult struct {
	Strategy      string  `csv:"Strategy"`
	Test          string  `csv:"Test"`
	Seed          int64   `csv:"Seed"`
	Courses       int     `csv:"Courses"`
	Faculty       int     `csv:"Faculty"`
	Rooms         int     `csv:"Rooms"`
	Days          int     `csv:"Days"`
	Duration      int64   `csv:"Duration(ms)"`
	Memory        float32 `csv:"Memory(MB)"`
	CpuPercentage int64   `csv:"CPU(%)"`
	Result        string  `csv:"Result"`
}

func main() {
	directory, err := os.MkdirTemp("", "examtabling-benchmark")
	if err != nil {
		log.Fatalf("cannot create test directory: %v", err)
	}
	defer os.RemoveAll(directory)

	tests := getTests(directory)
	results := make([]BenchmarkResult, 0, len(tests)*len(strategies))

	for _, test := range tests {
		for _, strategy := range strategies {
			fmt.Printf("Benchmarking test \"%v\" with strategy \"%v\"\n", test.Name, strategy)

			duration, maxMemory, cpuPercentage, result := measure(strategy, test)

			results = append(results, BenchmarkResult{
				Strategy:      strategy,
				Test:          filepath.Base(test.Name),
				Seed:          test.Seed,
				Courses:       test.Courses,
				Faculty:       test.Faculty,
				Rooms:         test.Rooms,
				Days:          test.Days,
				Duration:      duration,
				Memory:        maxMemory,
				CpuPercentage: cpuPercentage,
				Result:        resultTypes[result],
			})
		}
	}

	toCsv(results)
}

// Writes one synthetic input per size and seed
func getTests(directory string) []TestMetadata {
	tests := make([]TestMetadata, 0)
	for _, courses := range []int{10, 25, 50, 100, 200} {
		for _, seed := range []int64{1, 2, 3} {
			test := TestMetadata{
				Name:    filepath.Join(directory, fmt.Sprintf("%d-%d.json", courses, seed)),
				Seed:    seed,
				Courses: courses,
				Faculty: courses/2 + 2,
				Rooms:   courses/5 + 1,
				Days:    10,
			}

			content, err := json.Marshal(generate(test))
			if err != nil {
				log.Fatalf("cannot build input file: %v", err)
			}
			if err := os.WriteFile(test.Name, content, 0666); err != nil {
				log.Fatalf("cannot write input file: %v", err)
			}
			tests = append(tests, test)
		}
	}
	return tests
}

var departments = []string{"CS", "EC", "ME", "EE", "CE"}

// Generates a raw input where same-department courses share a third of their students.
// Faculty declare no availability; the search runs with --assume-available.
func generate(test TestMetadata) map[string]any {
	random := rand.New(rand.NewSource(test.Seed))
	end := windowStart.AddDays(test.Days - 1)

	courses := lo.Times(test.Courses, func(i int) map[string]any {
		department := departments[i%len(departments)]
		enrollment := 20 + random.Intn(100)
		shared := enrollment / 3
		students := append(
			model.GenerateStudents(department, shared),
			model.GenerateStudents(fmt.Sprintf("%v%03d", department, i), enrollment-shared)...,
		)
		return map[string]any{
			"code":       fmt.Sprintf("%v%03d", department, i),
			"name":       fmt.Sprintf("%v course %d", department, i),
			"department": department,
			"students":   students,
		}
	})

	faculty := lo.Times(test.Faculty, func(i int) map[string]any {
		return map[string]any{
			"id":         fmt.Sprintf("f%03d", i),
			"name":       fmt.Sprintf("Faculty %d", i),
			"department": departments[i%len(departments)],
		}
	})

	rooms := lo.Times(test.Rooms, func(i int) map[string]any {
		return map[string]any{
			"id":       fmt.Sprintf("r%03d", i),
			"name":     fmt.Sprintf("Room %d", i),
			"capacity": 40 + random.Intn(161),
		}
	})

	return map[string]any{
		"courses": courses,
		"faculty": faculty,
		"rooms":   rooms,
		"window":  map[string]any{"start": windowStart.String(), "end": end.String()},
		"batch":   map[string]any{"slotsPerDay": 2},
		"constraints": map[string]any{
			"maxExamsPerDay":   test.Rooms * 2,
			"examTimeGapHours": 0.5,
			"windowDays":       test.Days * 2,
		},
	}
}

func measure(strategy string, test TestMetadata) (duration int64, maxMemory float32, cpuPercentage int64, result ResultType) {
	args := []string{"-v", executablePath, strategy, "--input", test.Name, "--out", os.DevNull}
	if strategy == model.SearchStrategy {
		args = append(args, "--seed", strconv.FormatInt(test.Seed, 10), "--assume-available")
	}
	cmd := exec.Command("/usr/bin/time", args...)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	switch cmd.ProcessState.ExitCode() {
	case 10:
		result = complete
	case 20:
		result = infeasible
	case 15:
		result = unverified
	default:
		log.Fatalf("an error occurred during the execution \"examtabling\" at test \"%v\" using strategy \"%v\": %v\n", test.Name, strategy, stdErr.String())
	}
	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return duration, maxMemory, cpuPercentage, result
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		log.Panicf("cannot write CSV records: %v", err)
	}
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / 1024
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
