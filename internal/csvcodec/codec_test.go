package csvcodec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kirana_stock/internal/models"
)

func counter(start int64) func() int64 {
	next := start
	return func() int64 {
		next++
		return next
	}
}

func noNewID(t *testing.T) func() int64 {
	return func() int64 {
		t.Fatal("unexpected fresh id request")
		return 0
	}
}

func TestEncode(t *testing.T) {
	items := []models.Item{
		{ID: 1, ItemName: `Rice "Gold"`, Supplier: "Acme", VendorCycle: models.Weekly, NextOrderDay: models.Monday, TargetStock: 10, CurrentStock: 2},
		{ID: 2, ItemName: "Oil", Supplier: "Ravi & Sons", VendorCycle: models.BiWeekly, NextOrderDay: models.Friday, TargetStock: 5, CurrentStock: 5},
	}

	want := "id,itemName,supplier,vendorCycle,nextOrderDay,targetStock,currentStock\n" +
		`1,"Rice ""Gold""","Acme",Weekly,Monday,10,2` + "\n" +
		`2,"Oil","Ravi & Sons",Bi-Weekly,Friday,5,5`

	assert.Equal(t, want, Encode(items))
}

func TestEncode_EmptyCatalogIsHeaderOnly(t *testing.T) {
	assert.Equal(t, "id,itemName,supplier,vendorCycle,nextOrderDay,targetStock,currentStock", Encode(nil))
}

func TestRoundTrip(t *testing.T) {
	items := []models.Item{
		{ID: 1700000000001, ItemName: "Toor Dal", Supplier: "Patel Wholesale", VendorCycle: models.Weekly, NextOrderDay: models.Wednesday, TargetStock: 12, CurrentStock: 3},
		{ID: 1700000000002, ItemName: `Ghee "Pure"`, Supplier: "Amul Depot", VendorCycle: models.BiWeekly, NextOrderDay: models.Thursday, TargetStock: 0, CurrentStock: 7},
		{ID: 1700000000003, ItemName: "Salt", Supplier: "Tata", VendorCycle: models.Weekly, NextOrderDay: models.Monday, TargetStock: 30, CurrentStock: 30},
	}

	res, err := Decode(Encode(items), noNewID(t))

	require.NoError(t, err)
	assert.Equal(t, items, res.Items)
	assert.Equal(t, 3, res.Accepted)
	assert.Zero(t, res.Skipped)
}

func TestDecode_SkipsRowsWithWrongValueCount(t *testing.T) {
	text := "id,itemName,supplier,vendorCycle,nextOrderDay,targetStock,currentStock\n" +
		"1,Rice,Acme,Weekly,Monday,10,2\n" +
		"badrow\n" +
		"2,Oil,Acme,Bi-Weekly,Tuesday,5,5"

	res, err := Decode(text, noNewID(t))

	require.NoError(t, err)
	require.Equal(t, 2, res.Accepted)
	assert.Equal(t, int64(1), res.Items[0].ID)
	assert.Equal(t, int64(2), res.Items[1].ID)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, models.Item{ID: 2, ItemName: "Oil", Supplier: "Acme", VendorCycle: models.BiWeekly, NextOrderDay: models.Tuesday, TargetStock: 5, CurrentStock: 5}, res.Items[1])
}

func TestDecode_WholeFileFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{name: "empty", text: "", want: ErrInvalidFormat},
		{name: "header only", text: "id,itemName,supplier,vendorCycle,nextOrderDay,targetStock,currentStock", want: ErrInvalidFormat},
		{name: "missing column", text: "id,itemName,supplier,vendorCycle,nextOrderDay,targetStock\n1,Rice,Acme,Weekly,Monday,10", want: ErrMissingHeaders},
		{name: "misspelled column", text: "id,item_name,supplier,vendorCycle,nextOrderDay,targetStock,currentStock\n", want: ErrMissingHeaders},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Decode(tt.text, counter(0))
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestDecode_MissingHeadersNamesTheColumns(t *testing.T) {
	_, err := Decode("id,itemName,supplier,vendorCycle\n1,a,b,Weekly", counter(0))
	require.ErrorIs(t, err, ErrMissingHeaders)
	assert.Contains(t, err.Error(), "nextOrderDay, targetStock, currentStock")
}

func TestDecode_HeaderOrderDoesNotMatter(t *testing.T) {
	text := " currentStock , nextOrderDay,supplier,id,targetStock,vendorCycle,itemName\r\n" +
		`4,Friday,"Acme",9,12,Weekly,"Poha"` + "\r\n"

	res, err := Decode(text, noNewID(t))

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, models.Item{ID: 9, ItemName: "Poha", Supplier: "Acme", VendorCycle: models.Weekly, NextOrderDay: models.Friday, TargetStock: 12, CurrentStock: 4}, res.Items[0])
}

func TestDecode_Coercion(t *testing.T) {
	header := "id,itemName,supplier,vendorCycle,nextOrderDay,targetStock,currentStock\n"

	tests := []struct {
		name string
		row  string
		want models.Item
	}{
		{
			name: "unparsable id gets a fresh one",
			row:  "abc,Rice,Acme,Weekly,Monday,10,2",
			want: models.Item{ID: 101, ItemName: "Rice", Supplier: "Acme", VendorCycle: models.Weekly, NextOrderDay: models.Monday, TargetStock: 10, CurrentStock: 2},
		},
		{
			name: "zero id gets a fresh one",
			row:  "0,Rice,Acme,Weekly,Monday,10,2",
			want: models.Item{ID: 101, ItemName: "Rice", Supplier: "Acme", VendorCycle: models.Weekly, NextOrderDay: models.Monday, TargetStock: 10, CurrentStock: 2},
		},
		{
			name: "stock with trailing text keeps the leading number",
			row:  "5,Rice,Acme,Weekly,Monday,10kg,2.5",
			want: models.Item{ID: 5, ItemName: "Rice", Supplier: "Acme", VendorCycle: models.Weekly, NextOrderDay: models.Monday, TargetStock: 10, CurrentStock: 2},
		},
		{
			name: "unparsable and negative stock default to zero",
			row:  "5,Rice,Acme,Weekly,Monday,lots,-3",
			want: models.Item{ID: 5, ItemName: "Rice", Supplier: "Acme", VendorCycle: models.Weekly, NextOrderDay: models.Monday},
		},
		{
			name: "quotes stripped and unescaped",
			row:  `5,"Chana ""Kabuli""",  "Acme"  ,"Weekly",Monday,1,1`,
			want: models.Item{ID: 5, ItemName: `Chana "Kabuli"`, Supplier: "Acme", VendorCycle: models.Weekly, NextOrderDay: models.Monday, TargetStock: 1, CurrentStock: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Decode(header+tt.row, counter(100))
			require.NoError(t, err)
			require.Len(t, res.Items, 1)
			assert.Equal(t, tt.want, res.Items[0])
		})
	}
}

func TestDecode_RejectsInvalidRowsSilently(t *testing.T) {
	text := "id,itemName,supplier,vendorCycle,nextOrderDay,targetStock,currentStock\n" +
		"1,,Acme,Weekly,Monday,1,1\n" +
		`2,Rice,"",Weekly,Monday,1,1` + "\n" +
		"3,Rice,Acme,weekly,Monday,1,1\n" +
		"4,Rice,Acme,Weekly,Saturday,1,1\n" +
		"\n" +
		"   \n" +
		"5,Rice,Acme,Weekly,Monday,1,1\n" +
		"5,Duplicate,Acme,Weekly,Monday,1,1\n"

	res, err := Decode(text, counter(0))

	require.NoError(t, err)
	require.Equal(t, 1, res.Accepted)
	assert.Equal(t, int64(5), res.Items[0].ID)
	assert.Equal(t, "Rice", res.Items[0].ItemName)
	assert.Equal(t, 5, res.Skipped)
}

func TestDecode_IDsStayUnique(t *testing.T) {
	text := "id,itemName,supplier,vendorCycle,nextOrderDay,targetStock,currentStock\n" +
		"-7,Jaggery,Acme,Weekly,Monday,4,1\n" +
		"12,Tea,Acme,Weekly,Monday,4,1\n" +
		"12,Coffee,Acme,Weekly,Monday,4,1"

	res, err := Decode(text, counter(500))

	require.NoError(t, err)
	require.Equal(t, 2, res.Accepted)
	assert.Equal(t, int64(501), res.Items[0].ID, "negative ids are replaced")
	assert.Equal(t, "Tea", res.Items[1].ItemName, "first row with an id wins")
	assert.Equal(t, 1, res.Skipped)
}

func TestDecode_NoAcceptedRowsIsNotAnError(t *testing.T) {
	res, err := Decode("id,itemName,supplier,vendorCycle,nextOrderDay,targetStock,currentStock\nbad", counter(0))

	require.NoError(t, err)
	assert.Zero(t, res.Accepted)
	assert.NotNil(t, res.Items)
}

func TestDecode_EmbeddedCommaIsAKnownLimitation(t *testing.T) {
	text := "id,itemName,supplier,vendorCycle,nextOrderDay,targetStock,currentStock\n" +
		`1,"Rice, Basmati",Acme,Weekly,Monday,1,1`

	res, err := Decode(text, counter(0))

	require.NoError(t, err)
	assert.Zero(t, res.Accepted)
	assert.Equal(t, 1, res.Skipped)
}
