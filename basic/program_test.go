package basic

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProgramOrdersLines(t *testing.T) {

	ip := New()

	require.NoError(t, ip.LoadProgram(`
		30 PRINT "C"
		10 PRINT "A"
		20 PRINT "B"
	`))

	assert.Equal(t, []string{
		`10 PRINT "A"`,
		`20 PRINT "B"`,
		`30 PRINT "C"`,
	}, ip.Listing())
}

func TestLoadProgramReplacesOnDuplicate(t *testing.T) {

	ip := New()

	require.NoError(t, ip.LoadProgram(`
		10 PRINT "OLD"
		10 PRINT "NEW"
	`))

	assert.Equal(t, []string{`10 PRINT "NEW"`}, ip.Listing())
}

func TestLoadProgramRejectsBadLineNumber(t *testing.T) {

	ip := New()

	err := ip.LoadProgram("FOO PRINT 1")
	require.Error(t, err)
	assert.Equal(t, int16(14), ip.Err().Code)
}

func TestLoadProgramRejectsHugeLineNumber(t *testing.T) {

	ip := New()

	err := ip.LoadProgram("99999 PRINT 1")
	require.Error(t, err)
	assert.Equal(t, int16(14), ip.Err().Code)
}

func TestLoadProgramSkipsBlankLines(t *testing.T) {

	ip := New()

	require.NoError(t, ip.LoadProgram("\n\n10 END\n\n\n20 END\n"))
	assert.Len(t, ip.Listing(), 2)
}

func TestLoadProgramTooLarge(t *testing.T) {

	ip := New()

	var sb strings.Builder
	filler := strings.Repeat("X", 180)

	for i := 1; i <= 120; i++ {
		fmt.Fprintf(&sb, "%d REM %s\n", i*10, filler)
	}

	err := ip.LoadProgram(sb.String())
	require.Error(t, err)
	assert.Equal(t, int16(8), ip.Err().Code)
}

func TestLoadProgramLineTooLong(t *testing.T) {

	ip := New()

	err := ip.LoadProgram("10 REM " + strings.Repeat("X", maxLineLen))
	require.Error(t, err)
	assert.Equal(t, int16(13), ip.Err().Code)
}

func TestInsertAndDeleteLine(t *testing.T) {

	ip := New()

	require.NoError(t, ip.InsertLine(20, `PRINT "B"`))
	require.NoError(t, ip.InsertLine(10, `PRINT "A"`))
	require.NoError(t, ip.InsertLine(20, `PRINT "B2"`))

	assert.Equal(t, []string{`10 PRINT "A"`, `20 PRINT "B2"`}, ip.Listing())

	found, err := ip.DeleteLine(10)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = ip.DeleteLine(10)
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, []string{`20 PRINT "B2"`}, ip.Listing())
}

func TestInsertLineEmptyTextDeletes(t *testing.T) {

	ip := New()

	require.NoError(t, ip.InsertLine(10, "PRINT 1"))
	require.NoError(t, ip.InsertLine(10, ""))

	assert.Empty(t, ip.Listing())
}

func TestEditRebuildsDataPool(t *testing.T) {

	ip := New()

	require.NoError(t, ip.LoadProgram(`
		10 DATA 1, 2
		20 READ A
	`))
	assert.Len(t, ip.dataPool, 2)

	require.NoError(t, ip.InsertLine(10, "DATA 5"))
	assert.Len(t, ip.dataPool, 1)
	assert.InDelta(t, 5.0, ip.dataPool[0].num, 1e-9)
}

func TestReloadResetsSession(t *testing.T) {

	ip := New()

	require.NoError(t, ip.LoadProgram(`
		10 DATA 1
		20 READ A
		30 GOSUB 50
		40 END
		50 FOR I = 1 TO 100
		60 RETURN
	`))
	require.NoError(t, ip.Run())

	require.NoError(t, ip.LoadProgram("10 END"))

	assert.Empty(t, ip.symtab)
	assert.Empty(t, ip.forStack)
	assert.Empty(t, ip.gosubStack)
	assert.Zero(t, ip.dataIndex)
	assert.Empty(t, ip.dataPool)
}

func TestInitResetsEverything(t *testing.T) {

	ip := New()

	require.NoError(t, ip.LoadProgram("10 PRINT 1"))
	require.NoError(t, ip.ExecuteLine("LET A = 1"))

	ip.Init()

	assert.Empty(t, ip.Listing())
	assert.Empty(t, ip.symtab)
	assert.Nil(t, ip.Err())
}

func TestSnapshot(t *testing.T) {

	ip := New()

	require.NoError(t, ip.LoadProgram("10 DATA 1, 2\n20 READ A"))
	require.NoError(t, ip.Run())

	snap := ip.Snapshot()

	assert.Equal(t, ip.ID(), snap.ID)
	assert.Len(t, snap.Lines, 2)
	assert.Equal(t, 2, snap.DataCount)
	assert.Equal(t, 1, snap.DataIndex)
	assert.Equal(t, 1.0, snap.Variables["A"])
}
