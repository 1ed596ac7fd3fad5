package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInfo = `Name: HAProxy
Version: 1.4.8
Release_date: 2010/06/16
Nbproc: 1
Process_num: 1
Pid: 4218
Uptime: 0d 3h12m41s
Uptime_sec: 11561
Memmax_MB: 0
Ulimit-n: 40031
Maxsock: 40031
Maxconn: 20000
Maxpipes: 0
CurrConns: 312
PipesUsed: 0
PipesFree: 0
Tasks: 330
Run_queue: 1
node: lb-01
description:

`

func TestParseInfo(t *testing.T) {
	info, err := ParseInfo(scanner(sampleInfo))
	require.NoError(t, err)

	tests := []struct {
		key  string
		want string
	}{
		{InfoSoftwareName, "HAProxy"},
		{InfoSoftwareVersion, "1.4.8"},
		{InfoSoftwareRelease, "2010/06/16"},
		{InfoNbProc, "1"},
		{InfoProcessNum, "1"},
		{InfoPID, "4218"},
		{InfoUptime, "0d 3h12m41s"},
		{InfoMaxConn, "20000"},
		{InfoCurConn, "312"},
		{InfoMaxPipes, "0"},
		{InfoCurPipes, "0"},
		{InfoTasks, "330"},
		{InfoRunQueue, "1"},
		{InfoNode, "lb-01"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, info.Get(tt.key))
		})
	}

	// "description:" has no value and stays absent.
	_, ok := info[InfoDescription]
	assert.False(t, ok)
}

func TestParseInfo_IgnoresUnknownAndBlankLines(t *testing.T) {
	info, err := ParseInfo(scanner("", "   ", "Unknown_key: 5", "Pid: 12"))
	require.NoError(t, err)
	assert.Len(t, info, 1)
	assert.Equal(t, "12", info.Get(InfoPID))
}

func TestParseInfo_NonNumericValueDoesNotMatchNumericField(t *testing.T) {
	info, err := ParseInfo(scanner("Maxconn: lots"))
	require.NoError(t, err)
	_, ok := info[InfoMaxConn]
	assert.False(t, ok)
}

func TestInfo_Int(t *testing.T) {
	info := Info{InfoPID: "42", InfoNode: "lb-01"}

	n, ok := info.Int(InfoPID)
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	_, ok = info.Int(InfoNode)
	assert.False(t, ok)

	_, ok = info.Int(InfoTasks)
	assert.False(t, ok)

	assert.Equal(t, int64(7), info.IntOr(InfoTasks, 7))
	assert.Equal(t, int64(42), info.IntOr(InfoPID, 7))
	assert.Equal(t, "", info.Get(InfoTasks))
}
