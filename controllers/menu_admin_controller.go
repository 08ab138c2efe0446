package controllers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tableside/entity"
	"tableside/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MenuAdminController struct {
	Menu      *services.MenuService
	UploadDir string
}

func NewMenuAdminController(menu *services.MenuService, uploadDir string) *MenuAdminController {
	return &MenuAdminController{Menu: menu, UploadDir: uploadDir}
}

// POST /add_menu_item
func (mc *MenuAdminController) Add(c *gin.Context) {
	item, ok := mc.itemFromForm(c, &entity.MenuItem{})
	if !ok {
		return
	}

	if file, err := c.FormFile("image"); err == nil && file.Filename != "" {
		filename, err := mc.saveImage(c, file)
		if err != nil {
			log.Println("save image:", err)
			flash(c, "Could not save the image")
			return
		}
		item.ImageFilename = filename
	}

	if err := mc.Menu.Create(item); err != nil {
		mc.saveError(c, err)
		return
	}
	flash(c, "Menu item added")
}

// POST /edit_menu_item/:id
func (mc *MenuAdminController) Edit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusNotFound, "menu item not found")
		return
	}

	existing, err := mc.Menu.Get(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			c.String(http.StatusNotFound, "menu item not found")
			return
		}
		log.Println("edit menu item:", err)
		flash(c, "Could not update the item")
		return
	}

	item, ok := mc.itemFromForm(c, existing)
	if !ok {
		return
	}

	// A replacement image evicts the previous asset file first; filenames
	// have a single owner.
	if file, err := c.FormFile("image"); err == nil && file.Filename != "" {
		if item.ImageFilename != "" {
			old := filepath.Join(mc.UploadDir, item.ImageFilename)
			if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
				log.Println("remove old image:", err)
			}
		}
		filename, err := mc.saveImage(c, file)
		if err != nil {
			log.Println("save image:", err)
			flash(c, "Could not save the image")
			return
		}
		item.ImageFilename = filename
	}

	if err := mc.Menu.Update(item); err != nil {
		mc.saveError(c, err)
		return
	}
	flash(c, "Menu item updated")
}

// POST /delete_menu_item/:id
func (mc *MenuAdminController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusNotFound, "menu item not found")
		return
	}

	item, err := mc.Menu.Delete(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			c.String(http.StatusNotFound, "menu item not found")
			return
		}
		log.Println("delete menu item:", err)
		flash(c, "Could not delete the item")
		return
	}

	if item.ImageFilename != "" {
		path := filepath.Join(mc.UploadDir, item.ImageFilename)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Println("remove image:", err)
		}
	}
	flash(c, "Menu item removed")
}

// itemFromForm fills dst from the multipart form, flashing a validation
// message and returning ok=false when required fields are missing.
func (mc *MenuAdminController) itemFromForm(c *gin.Context, dst *entity.MenuItem) (*entity.MenuItem, bool) {
	name := strings.TrimSpace(c.PostForm("name"))
	priceStr := c.PostForm("price")
	category := c.PostForm("category")
	if name == "" || priceStr == "" || category == "" {
		flash(c, "Name, price and category are required")
		return nil, false
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		flash(c, "Invalid price")
		return nil, false
	}

	var displayDate *time.Time
	if d := c.PostForm("display_date"); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			flash(c, "Invalid display date")
			return nil, false
		}
		displayDate = &t
	}

	dst.Name = name
	dst.Description = c.PostForm("description")
	dst.Price = price
	dst.Category = category
	dst.Customizable = c.PostForm("customizable") != ""
	dst.DisplayDate = displayDate
	return dst, true
}

func (mc *MenuAdminController) saveImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	filename := fmt.Sprintf("menu_%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(mc.UploadDir, filename)); err != nil {
		return "", err
	}
	return filename, nil
}

func (mc *MenuAdminController) saveError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrInvalidPrice) {
		flash(c, "Price must not be negative")
		return
	}
	log.Println("save menu item:", err)
	flash(c, "Could not save the item")
}

func flash(c *gin.Context, msg string) {
	c.Redirect(http.StatusSeeOther, "/admin?msg="+url.QueryEscape(msg))
}
