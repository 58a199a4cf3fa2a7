package lib

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/yeqown/go-qrcode"
)

// QRCodeJPEG renders content as a QR code and returns the encoded image.
func QRCodeJPEG(content string) ([]byte, error) {
	qrc, err := qrcode.New(content)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(os.TempDir(), fmt.Sprintf("qr-%s.jpeg", uuid.NewString()))
	if err := qrc.Save(path); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", path, err.Error())
		return nil, err
	}
	defer os.Remove(path)
	return os.ReadFile(path)
}
