package constraints

import "github.com/funvibe/tyforge/internal/types"

func testInt() types.T    { return types.TNumbers{N: types.NumInt{}} }
func testNumber() types.T { return types.TNumbers{N: types.NumAll{}} }
func testString() types.T { return types.TStrings{S: types.StrAll{}} }
func testBool() types.T   { return types.TBoolean{} }

func record(fields map[string]types.T) types.T {
	return types.TTables{TB: types.TableRecord{Fields: fields}}
}
