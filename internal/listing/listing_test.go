package listing

import (
	"errors"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    *File
		wantErr bool
	}{
		{
			name: "archive entry",
			line: "modify=20131125174213;perm=adfr;size=24847843;type=file;unique=4600001UE9FE;UNIX.group=183;UNIX.mode=0644;UNIX.owner=505; medline14n0745.xml.gz",
			want: &File{
				Modified: "20131125174213",
				Size:     24847843,
				UniqueID: "4600001UE9FE",
				Filename: "medline14n0745.xml.gz",
			},
		},
		{
			name: "checksum entry",
			line: "modify=20131125174556;perm=adfr;size=63;type=file;unique=4600001UEA02; medline14n0002.xml.gz.md5",
			want: &File{
				Modified: "20131125174556",
				Size:     63,
				UniqueID: "4600001UEA02",
				Filename: "medline14n0002.xml.gz.md5",
			},
		},
		{
			name: "current directory entry is filtered",
			line: "modify=20131125174213;perm=el;size=4096;type=cdir;unique=4600001UE9AA; .",
			want: nil,
		},
		{
			name: "parent directory entry is filtered",
			line: "modify=20131125174213;perm=el;size=4096;type=pdir;unique=4600001UE9AB; ..",
			want: nil,
		},
		{
			name:    "missing separator",
			line:    "modify=20131125174213;size=63;type=file;unique=4600001UEA02;",
			wantErr: true,
		},
		{
			name:    "fact without equals sign",
			line:    "modify=20131125174213;garbage;type=file;unique=4600001UEA02; somefile.txt",
			wantErr: true,
		},
		{
			name:    "missing unique fact",
			line:    "modify=20131125174213;size=63;type=file; somefile.txt",
			wantErr: true,
		},
		{
			name:    "unparsable size",
			line:    "modify=20131125174213;size=large;type=file;unique=4600001UEA02; somefile.txt",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var fe *FormatError
				if !errors.As(err, &fe) {
					t.Fatalf("ParseLine() error = %T, want *FormatError", err)
				}
				return
			}
			if tt.want == nil {
				if got != nil {
					t.Fatalf("ParseLine() = %+v, want no descriptor", got)
				}
				return
			}
			if got == nil {
				t.Fatal("ParseLine() returned no descriptor")
			}
			if *got != *tt.want {
				t.Errorf("ParseLine() = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}
