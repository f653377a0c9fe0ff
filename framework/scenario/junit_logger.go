package scenario

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/headkey/memory-test-harness/framework"
)

// JUnitStepLogger accumulates step results and writes them as a JUnit XML
// report when the run ends, so CI systems can display the scenario as a test
// suite.
type JUnitStepLogger struct {
	filePath  string
	suiteName string
	stepNames []string // preserves run order
	steps     map[string]jUnitStepStatus
	lock      sync.Mutex
}

type jUnitStepStatus struct {
	failures   []error
	skipReason string
	skipped    bool
	output     string
	startTime  time.Time
	duration   time.Duration
}

// Struct definitions for the JUnit XML schema - see https://github.com/jstemmer/go-junit-report

type jUnitXMLDocument struct {
	XMLName xml.Name            `xml:"testsuites"`
	Suites  []jUnitXMLTestSuite `xml:"testsuite"`
}

type jUnitXMLTestSuite struct {
	XMLName   xml.Name           `xml:"testsuite"`
	Tests     int                `xml:"tests,attr"`
	Failures  int                `xml:"failures,attr"`
	Time      string             `xml:"time,attr"`
	Name      string             `xml:"name,attr"`
	TestCases []jUnitXMLTestCase `xml:"testcase"`
}

type jUnitXMLTestCase struct {
	XMLName     xml.Name             `xml:"testcase"`
	Classname   string               `xml:"classname,attr"`
	Name        string               `xml:"name,attr"`
	Time        string               `xml:"time,attr"`
	SkipMessage *jUnitXMLSkipMessage `xml:"skipped,omitempty"`
	Failure     *jUnitXMLFailure     `xml:"failure,omitempty"`
}

type jUnitXMLSkipMessage struct {
	Message string `xml:"message,attr"`
}

type jUnitXMLFailure struct {
	Message  string `xml:"message,attr"`
	Type     string `xml:"type,attr"`
	Contents string `xml:",chardata"`
}

func NewJUnitStepLogger(filePath, suiteName string) *JUnitStepLogger {
	return &JUnitStepLogger{
		filePath:  filePath,
		suiteName: suiteName,
		steps:     make(map[string]jUnitStepStatus),
	}
}

func (j *JUnitStepLogger) StepStarted(name string) {
	j.lock.Lock()
	defer j.lock.Unlock()
	j.stepNames = append(j.stepNames, name)
	j.steps[name] = jUnitStepStatus{startTime: time.Now()}
}

func (j *JUnitStepLogger) StepError(name string, err error) {
	j.lock.Lock()
	defer j.lock.Unlock()
	status := j.steps[name]
	status.failures = append(status.failures, err)
	j.steps[name] = status
}

func (j *JUnitStepLogger) StepWarning(name string, message string) {
	j.lock.Lock()
	defer j.lock.Unlock()
	status := j.steps[name]
	status.output += "WARNING: " + message + "\n"
	j.steps[name] = status
}

func (j *JUnitStepLogger) StepFinished(name string, result StepResult, debugOutput framework.CapturedOutput) {
	j.lock.Lock()
	defer j.lock.Unlock()
	status := j.steps[name]
	status.output += debugOutput.ToString("")
	status.duration = time.Since(status.startTime)
	j.steps[name] = status
}

func (j *JUnitStepLogger) StepSkipped(name string, reason string) {
	j.lock.Lock()
	defer j.lock.Unlock()
	j.stepNames = append(j.stepNames, name)
	j.steps[name] = jUnitStepStatus{skipped: true, skipReason: reason}
}

func (j *JUnitStepLogger) EndLog(results Results) error {
	fmt.Printf("Writing JUnit data to %s\n", j.filePath)

	j.lock.Lock()
	defer j.lock.Unlock()

	suite := jUnitXMLTestSuite{Name: j.suiteName}
	suiteTotalDuration := time.Duration(0)
	for _, name := range j.stepNames {
		status := j.steps[name]

		suite.Tests++
		if len(status.failures) != 0 {
			suite.Failures++
		}
		suiteTotalDuration += status.duration

		testCase := jUnitXMLTestCase{
			Classname: j.suiteName,
			Name:      name,
			Time:      jUnitDurationString(status.duration),
		}
		if status.skipped {
			testCase.SkipMessage = &jUnitXMLSkipMessage{Message: status.skipReason}
		}
		if len(status.failures) != 0 {
			messages := make([]string, 0, len(status.failures))
			for _, e := range status.failures {
				messages = append(messages, e.Error())
			}
			testCase.Failure = &jUnitXMLFailure{
				Message:  strings.Join(messages, "\n"),
				Contents: status.output,
			}
		}
		suite.TestCases = append(suite.TestCases, testCase)
	}
	suite.Time = jUnitDurationString(suiteTotalDuration)

	doc := jUnitXMLDocument{Suites: []jUnitXMLTestSuite{suite}}
	bytes, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	bytes = append(bytes, '\n')

	return os.WriteFile(j.filePath, bytes, 0644) //nolint:gosec
}

func jUnitDurationString(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
